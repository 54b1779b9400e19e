package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"bakehouse/internal/models"

	"github.com/google/uuid"
)

// MemoryReviewRepository is an in-memory implementation of ReviewRepository.
type MemoryReviewRepository struct {
	reviews map[string]models.Review
	mu      sync.RWMutex
}

// NewMemoryReviewRepository creates a new instance of MemoryReviewRepository.
func NewMemoryReviewRepository() *MemoryReviewRepository {
	return &MemoryReviewRepository{
		reviews: make(map[string]models.Review),
	}
}

// Create adds a new review.
func (r *MemoryReviewRepository) Create(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()
	r.reviews[review.ID] = *review
	return nil
}

// GetByProductID returns the reviews of one product, newest first.
func (r *MemoryReviewRepository) GetByProductID(productID string) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var reviews []models.Review
	for _, review := range r.reviews {
		if review.ProductID == productID {
			reviews = append(reviews, review)
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}

// GetByID returns a review by its ID.
func (r *MemoryReviewRepository) GetByID(id string) (*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	review, ok := r.reviews[id]
	if !ok {
		return nil, fmt.Errorf("review with ID %s not found", id)
	}
	return &review, nil
}

// IncrementHelpful adds one helpful vote to a review.
func (r *MemoryReviewRepository) IncrementHelpful(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	review, ok := r.reviews[id]
	if !ok {
		return fmt.Errorf("review with ID %s not found", id)
	}
	review.HelpfulCount++
	review.UpdatedAt = time.Now()
	r.reviews[id] = review
	return nil
}
