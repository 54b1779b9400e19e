package models

import "gorm.io/gorm"

// Product represents a bakery item in the catalog.
type Product struct {
	ID            string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name          string  `json:"name" validate:"required,min=2,max=100"`
	Description   string  `json:"description" validate:"omitempty,max=1000"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	Category      string  `json:"category" validate:"required,max=50"`
	ImageURL      string  `json:"image_url" validate:"omitempty,url"`
	Ingredients   string  `json:"ingredients" validate:"omitempty,max=1000"`
	NutritionInfo string  `json:"nutrition_info" validate:"omitempty,max=1000"`
	InStock       bool    `json:"in_stock"`
	Featured      bool    `json:"featured"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
