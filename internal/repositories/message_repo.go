package repositories

import "bakehouse/internal/models"

// MessageFilter narrows inbox listings.
type MessageFilter struct {
	Status   models.MessageStatus   // empty means all statuses
	Priority models.MessagePriority // empty means all priorities
}

// MessageRepository defines the interface for contact-message data access.
type MessageRepository interface {
	Create(message *models.Message) error
	GetAll(filter MessageFilter) ([]models.Message, error)
	GetByID(id string) (*models.Message, error)
	Update(message *models.Message) error
}
