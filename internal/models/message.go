package models

import (
	"fmt"
	"time"
)

// MessageStatus is the handling state of a contact message.
type MessageStatus string

const (
	MessageStatusNew      MessageStatus = "new"
	MessageStatusRead     MessageStatus = "read"
	MessageStatusReplied  MessageStatus = "replied"
	MessageStatusResolved MessageStatus = "resolved"
)

// MessagePriority is the triage priority of a contact message.
type MessagePriority string

const (
	PriorityLow    MessagePriority = "low"
	PriorityMedium MessagePriority = "medium"
	PriorityHigh   MessagePriority = "high"
)

// messageTransitions lists the allowed forward moves per status. A message
// only ever advances: new → read → replied → resolved, with replied
// reachable directly from new (an admin can answer without opening first).
var messageTransitions = map[MessageStatus][]MessageStatus{
	MessageStatusNew:      {MessageStatusRead, MessageStatusReplied, MessageStatusResolved},
	MessageStatusRead:     {MessageStatusReplied, MessageStatusResolved},
	MessageStatusReplied:  {MessageStatusResolved},
	MessageStatusResolved: {},
}

// Valid reports whether s is a known message status.
func (s MessageStatus) Valid() bool {
	_, ok := messageTransitions[s]
	return ok
}

// CanTransitionTo reports whether the move s → target is allowed.
func (s MessageStatus) CanTransitionTo(target MessageStatus) bool {
	for _, allowed := range messageTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Transition validates the move s → target.
func (s MessageStatus) Transition(target MessageStatus) (MessageStatus, error) {
	if !target.Valid() {
		return s, fmt.Errorf("unknown message status: %s", target)
	}
	if !s.CanTransitionTo(target) {
		return s, fmt.Errorf("illegal message status transition %s -> %s", s, target)
	}
	return target, nil
}

// Valid reports whether p is a known priority.
func (p MessagePriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Message is a contact/support message submitted through the storefront.
type Message struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string          `json:"name" validate:"required,min=2,max=100"`
	Email     string          `json:"email" validate:"required,email"`
	Phone     string          `json:"phone" validate:"omitempty,max=30"`
	Subject   string          `json:"subject" validate:"required,min=2,max=200"`
	Body      string          `json:"body" gorm:"type:text" validate:"required,min=2,max=5000"`
	Status    MessageStatus   `json:"status" gorm:"type:varchar(20)"`
	Priority  MessagePriority `json:"priority" gorm:"type:varchar(10)"`
	Reply     string          `json:"reply,omitempty" gorm:"type:text"`
	RepliedBy string          `json:"replied_by,omitempty" gorm:"type:varchar(100)"`
	RepliedAt *time.Time      `json:"replied_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
