package repositories

import "bakehouse/internal/models"

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByProductID(productID string) ([]models.Review, error)
	GetByID(id string) (*models.Review, error)
	IncrementHelpful(id string) error
}
