package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"bakehouse/internal/models"

	"github.com/google/uuid"
)

// MemoryTestimonialRepository is an in-memory implementation of
// TestimonialRepository.
type MemoryTestimonialRepository struct {
	testimonials map[string]models.Testimonial
	mu           sync.RWMutex
}

// NewMemoryTestimonialRepository creates a new instance of MemoryTestimonialRepository.
func NewMemoryTestimonialRepository() *MemoryTestimonialRepository {
	return &MemoryTestimonialRepository{
		testimonials: make(map[string]models.Testimonial),
	}
}

// GetAll returns all testimonials, newest first.
func (r *MemoryTestimonialRepository) GetAll() ([]models.Testimonial, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	testimonialList := make([]models.Testimonial, 0, len(r.testimonials))
	for _, t := range r.testimonials {
		testimonialList = append(testimonialList, t)
	}
	sort.Slice(testimonialList, func(i, j int) bool {
		return testimonialList[i].CreatedAt.After(testimonialList[j].CreatedAt)
	})
	return testimonialList, nil
}

// Create adds a new testimonial.
func (r *MemoryTestimonialRepository) Create(testimonial *models.Testimonial) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if testimonial.ID == "" {
		testimonial.ID = uuid.New().String()
	}
	testimonial.CreatedAt = time.Now()
	testimonial.UpdatedAt = time.Now()
	r.testimonials[testimonial.ID] = *testimonial
	return nil
}

// Delete removes a testimonial by its ID.
func (r *MemoryTestimonialRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.testimonials[id]
	if !ok {
		return fmt.Errorf("testimonial with ID %s not found for deletion", id)
	}
	delete(r.testimonials, id)
	return nil
}
