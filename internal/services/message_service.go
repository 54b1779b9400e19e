package services

import (
	"fmt"
	"time"

	"bakehouse/internal/models"
	"bakehouse/internal/repositories"
)

// InboxStats summarizes the admin message inbox.
type InboxStats struct {
	Total    int `json:"total"`
	New      int `json:"new"`
	Replied  int `json:"replied"`
	Resolved int `json:"resolved"`
}

// MessageService handles business logic for the contact-message inbox.
type MessageService struct {
	repo repositories.MessageRepository
}

// NewMessageService creates a new MessageService.
func NewMessageService(repo repositories.MessageRepository) *MessageService {
	return &MessageService{
		repo: repo,
	}
}

// SubmitMessage stores a contact-form submission. New messages start in the
// new status; priority defaults to medium when the form does not set one.
func (s *MessageService) SubmitMessage(message *models.Message) error {
	message.Status = models.MessageStatusNew
	if message.Priority == "" {
		message.Priority = models.PriorityMedium
	}
	if !message.Priority.Valid() {
		return fmt.Errorf("invalid message priority: %s", message.Priority)
	}
	if err := s.repo.Create(message); err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// GetMessages retrieves messages matching the filter, newest first.
func (s *MessageService) GetMessages(filter repositories.MessageFilter) ([]models.Message, error) {
	return s.repo.GetAll(filter)
}

// UpdateStatus moves a message to a new handling status; only forward moves
// are allowed.
func (s *MessageService) UpdateStatus(id string, status models.MessageStatus) (*models.Message, error) {
	message, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	newStatus, err := message.Status.Transition(status)
	if err != nil {
		return nil, err
	}
	message.Status = newStatus

	if err := s.repo.Update(message); err != nil {
		return nil, fmt.Errorf("failed to update message status: %w", err)
	}
	return message, nil
}

// Reply records an admin reply on a message and marks it replied.
func (s *MessageService) Reply(id, replyText, repliedBy string) (*models.Message, error) {
	if replyText == "" {
		return nil, fmt.Errorf("reply text is required")
	}

	message, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	newStatus, err := message.Status.Transition(models.MessageStatusReplied)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	message.Status = newStatus
	message.Reply = replyText
	message.RepliedBy = repliedBy
	message.RepliedAt = &now

	if err := s.repo.Update(message); err != nil {
		return nil, fmt.Errorf("failed to save reply: %w", err)
	}
	return message, nil
}

// GetStats computes inbox counters for the admin dashboard.
func (s *MessageService) GetStats() (*InboxStats, error) {
	messages, err := s.repo.GetAll(repositories.MessageFilter{})
	if err != nil {
		return nil, err
	}

	stats := &InboxStats{Total: len(messages)}
	for _, m := range messages {
		switch m.Status {
		case models.MessageStatusNew:
			stats.New++
		case models.MessageStatusReplied:
			stats.Replied++
		case models.MessageStatusResolved:
			stats.Resolved++
		}
	}
	return stats, nil
}
