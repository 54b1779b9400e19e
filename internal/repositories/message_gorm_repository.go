package repositories

import (
	"fmt"

	"bakehouse/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMessageRepository is a GORM implementation of MessageRepository.
type GORMMessageRepository struct {
	db *gorm.DB
}

// NewGORMMessageRepository creates a new instance of GORMMessageRepository.
func NewGORMMessageRepository(db *gorm.DB) *GORMMessageRepository {
	return &GORMMessageRepository{
		db: db,
	}
}

// Create creates a new contact message.
func (r *GORMMessageRepository) Create(message *models.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// GetAll retrieves messages matching the filter, newest first.
func (r *GORMMessageRepository) GetAll(filter MessageFilter) ([]models.Message, error) {
	query := r.db.Order("created_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}

	var messages []models.Message
	if err := query.Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	return messages, nil
}

// GetByID retrieves a single message.
func (r *GORMMessageRepository) GetByID(id string) (*models.Message, error) {
	var message models.Message
	if err := r.db.First(&message, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("message with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get message by ID %s: %w", id, err)
	}
	return &message, nil
}

// Update saves the full state of a message (status moves and replies).
func (r *GORMMessageRepository) Update(message *models.Message) error {
	res := r.db.Save(message)
	if res.Error != nil {
		return fmt.Errorf("failed to update message: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("message with ID %s not found for update", message.ID)
	}
	return nil
}
