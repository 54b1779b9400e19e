package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"bakehouse/internal/models"

	"github.com/google/uuid"
)

// MemoryMessageRepository is an in-memory implementation of MessageRepository.
type MemoryMessageRepository struct {
	messages map[string]models.Message
	mu       sync.RWMutex
}

// NewMemoryMessageRepository creates a new instance of MemoryMessageRepository.
func NewMemoryMessageRepository() *MemoryMessageRepository {
	return &MemoryMessageRepository{
		messages: make(map[string]models.Message),
	}
}

// Create adds a new contact message.
func (r *MemoryMessageRepository) Create(message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()
	message.UpdatedAt = time.Now()
	r.messages[message.ID] = *message
	return nil
}

// GetAll returns messages matching the filter, newest first.
func (r *MemoryMessageRepository) GetAll(filter MessageFilter) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var messages []models.Message
	for _, m := range r.messages {
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && m.Priority != filter.Priority {
			continue
		}
		messages = append(messages, m)
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
	return messages, nil
}

// GetByID returns a message by its ID.
func (r *MemoryMessageRepository) GetByID(id string) (*models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	message, ok := r.messages[id]
	if !ok {
		return nil, fmt.Errorf("message with ID %s not found", id)
	}
	return &message, nil
}

// Update saves the full state of a message.
func (r *MemoryMessageRepository) Update(message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.messages[message.ID]
	if !ok {
		return fmt.Errorf("message with ID %s not found for update", message.ID)
	}
	message.CreatedAt = existing.CreatedAt
	message.UpdatedAt = time.Now()
	r.messages[message.ID] = *message
	return nil
}
