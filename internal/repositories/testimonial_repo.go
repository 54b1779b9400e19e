package repositories

import "bakehouse/internal/models"

// TestimonialRepository defines the interface for testimonial data access.
type TestimonialRepository interface {
	GetAll() ([]models.Testimonial, error)
	Create(testimonial *models.Testimonial) error
	Delete(id string) error
}
