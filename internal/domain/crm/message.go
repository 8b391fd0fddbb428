package crm

import (
	"strings"
	"time"

	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MessageDirection distinguishes inbound from outbound messages
type MessageDirection string

const (
	MessageInbound  MessageDirection = "in"
	MessageOutbound MessageDirection = "out"
)

// MessageStatus tracks delivery progress of a message
type MessageStatus string

const (
	MessageStatusPending   MessageStatus = "pending"
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusRead      MessageStatus = "read"
)

// Message is one entry of a contact's conversation history. Delivery is
// handled by an external channel; the core only records and tracks status.
type Message struct {
	shared.TenantAggregateRoot
	ContactID uuid.UUID        `gorm:"type:uuid;not null;index"`
	Direction MessageDirection `gorm:"type:varchar(5);not null"`
	Content   string           `gorm:"type:text;not null"`
	Status    MessageStatus    `gorm:"type:varchar(20);not null;default:'pending'"`
	SentAt    time.Time        `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Message) TableName() string {
	return "messages"
}

// NewMessage records a message for a contact
func NewMessage(tenantID, contactID uuid.UUID, direction MessageDirection, content string) (*Message, error) {
	if direction != MessageInbound && direction != MessageOutbound {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Unknown message direction")
	}
	if strings.TrimSpace(content) == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Message content cannot be empty")
	}
	m := &Message{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ContactID:           contactID,
		Direction:           direction,
		Content:             content,
		Status:              MessageStatusPending,
		SentAt:              time.Now(),
	}
	m.AddDomainEvent(NewMessageRecordedEvent(m))
	return m, nil
}

// MarkStatus advances the delivery status
func (m *Message) MarkStatus(status MessageStatus) error {
	switch status {
	case MessageStatusPending, MessageStatusSent, MessageStatusDelivered, MessageStatusRead:
		m.Status = status
		m.UpdatedAt = time.Now()
		return nil
	}
	return shared.NewDomainError("VALIDATION_FAILED", "Unknown message status")
}

// IsUnread reports whether an inbound message still awaits reading
func (m *Message) IsUnread() bool {
	return m.Direction == MessageInbound && m.Status != MessageStatusRead
}
