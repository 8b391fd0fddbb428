package crm

import (
	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types published by the crm context
const (
	EventTypeMessageRecorded = "crm.message.recorded"
	EventTypeContactCreated  = "crm.contact.created"
)

// MessageRecordedEvent is published after a message is durably written.
// Outbound delivery subscribes to it; delivery is observational, never
// transactional with the write.
type MessageRecordedEvent struct {
	shared.BaseDomainEvent
	ContactID uuid.UUID        `json:"contact_id"`
	Direction MessageDirection `json:"direction"`
	Content   string           `json:"content"`
}

// NewMessageRecordedEvent creates a MessageRecordedEvent from a message
func NewMessageRecordedEvent(m *Message) *MessageRecordedEvent {
	return &MessageRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMessageRecorded, "Message", m.ID, m.TenantID),
		ContactID:       m.ContactID,
		Direction:       m.Direction,
		Content:         m.Content,
	}
}

// ContactCreatedEvent is published when a contact enters the funnel
type ContactCreatedEvent struct {
	shared.BaseDomainEvent
	Name  string    `json:"name"`
	Stage DealStage `json:"stage"`
}

// NewContactCreatedEvent creates a ContactCreatedEvent from a contact
func NewContactCreatedEvent(c *Contact) *ContactCreatedEvent {
	return &ContactCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContactCreated, "Contact", c.ID, c.TenantID),
		Name:            c.Name,
		Stage:           c.Stage,
	}
}
