package repositories

import (
	"bakehouse/internal/models"
)

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Category    string // empty means all categories
	InStockOnly bool
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(filter ProductFilter) ([]models.Product, error)
	GetFeatured(limit int) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
