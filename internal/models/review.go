package models

import "time"

// Review is a customer review of a product.
type Review struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID    string    `json:"product_id" gorm:"index;type:varchar(36)" validate:"required"`
	UserID       string    `json:"user_id" gorm:"index;type:varchar(36)"`
	AuthorName   string    `json:"author_name" gorm:"type:varchar(100)"`
	Rating       int       `json:"rating" validate:"required,min=1,max=5"`
	Title        string    `json:"title" validate:"required,min=2,max=200"`
	Comment      string    `json:"comment" gorm:"type:text" validate:"required,min=2,max=5000"`
	HelpfulCount int       `json:"helpful_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RatingSummary aggregates the reviews of one product.
type RatingSummary struct {
	ProductID     string  `json:"product_id"`
	ReviewCount   int     `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}
