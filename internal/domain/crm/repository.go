package crm

import (
	"context"

	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ContactRepository provides access to the bound tenant's contacts
type ContactRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Contact, error)
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, contact *Contact) error
	// Delete removes the contact only. Messages are intentionally not
	// cascaded; the conversation history outlives the funnel entry.
	Delete(ctx context.Context, id uuid.UUID) error
}

// MessageRepository provides access to the bound tenant's messages
type MessageRepository interface {
	FindByContact(ctx context.Context, contactID uuid.UUID, filter shared.Filter) ([]Message, error)
	// LatestByContact returns the most recent message of a contact, or
	// NotFound when the conversation is empty.
	LatestByContact(ctx context.Context, contactID uuid.UUID) (*Message, error)
	// CountUnreadByContact counts inbound messages that have not reached
	// read status.
	CountUnreadByContact(ctx context.Context, contactID uuid.UUID) (int64, error)
	Save(ctx context.Context, message *Message) error
	// MarkReadByContact marks every inbound message of the contact read.
	MarkReadByContact(ctx context.Context, contactID uuid.UUID) error
}
