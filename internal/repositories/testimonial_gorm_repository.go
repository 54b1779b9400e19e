package repositories

import (
	"fmt"

	"bakehouse/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMTestimonialRepository is a GORM implementation of TestimonialRepository.
type GORMTestimonialRepository struct {
	db *gorm.DB
}

// NewGORMTestimonialRepository creates a new instance of GORMTestimonialRepository.
func NewGORMTestimonialRepository(db *gorm.DB) *GORMTestimonialRepository {
	return &GORMTestimonialRepository{
		db: db,
	}
}

// GetAll retrieves all testimonials, newest first.
func (r *GORMTestimonialRepository) GetAll() ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	if err := r.db.Order("created_at DESC").Find(&testimonials).Error; err != nil {
		return nil, fmt.Errorf("failed to get testimonials: %w", err)
	}
	return testimonials, nil
}

// Create creates a new testimonial.
func (r *GORMTestimonialRepository) Create(testimonial *models.Testimonial) error {
	if testimonial.ID == "" {
		testimonial.ID = uuid.New().String()
	}
	if err := r.db.Create(testimonial).Error; err != nil {
		return fmt.Errorf("failed to create testimonial: %w", err)
	}
	return nil
}

// Delete deletes a testimonial by its ID.
func (r *GORMTestimonialRepository) Delete(id string) error {
	res := r.db.Delete(&models.Testimonial{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete testimonial: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("testimonial with ID %s not found for deletion", id)
	}
	return nil
}
