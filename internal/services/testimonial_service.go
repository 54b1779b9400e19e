package services

import (
	"fmt"

	"bakehouse/internal/models"
	"bakehouse/internal/repositories"
)

// TestimonialService handles the home-page testimonial quotes.
type TestimonialService struct {
	repo repositories.TestimonialRepository
}

// NewTestimonialService creates a new TestimonialService.
func NewTestimonialService(repo repositories.TestimonialRepository) *TestimonialService {
	return &TestimonialService{
		repo: repo,
	}
}

// GetTestimonials retrieves all testimonials, newest first.
func (s *TestimonialService) GetTestimonials() ([]models.Testimonial, error) {
	return s.repo.GetAll()
}

// CreateTestimonial stores a new testimonial.
func (s *TestimonialService) CreateTestimonial(testimonial *models.Testimonial) error {
	if testimonial.Rating < 1 || testimonial.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", testimonial.Rating)
	}
	return s.repo.Create(testimonial)
}

// DeleteTestimonial removes a testimonial by its ID.
func (s *TestimonialService) DeleteTestimonial(id string) error {
	return s.repo.Delete(id)
}
