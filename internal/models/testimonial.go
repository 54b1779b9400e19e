package models

import "time"

// Testimonial is a short customer quote shown on the home page.
type Testimonial struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" validate:"required,min=2,max=100"`
	Message   string    `json:"message" gorm:"type:text" validate:"required,min=2,max=2000"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
