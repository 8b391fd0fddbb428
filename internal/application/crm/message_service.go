package crm

import (
	"context"

	"github.com/craftbase/backend/internal/domain/crm"
	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/craftbase/backend/internal/domain/tenant"
	"github.com/google/uuid"
)

// MessageService records and queries conversation messages. Delivery to an
// external channel happens through event subscribers, never inline.
type MessageService struct {
	factory   tenant.Factory
	publisher shared.EventPublisher
}

// NewMessageService creates a new MessageService
func NewMessageService(factory tenant.Factory, publisher shared.EventPublisher) *MessageService {
	return &MessageService{
		factory:   factory,
		publisher: publisher,
	}
}

// Record writes a message to a contact's conversation. The referenced
// contact must exist in the bound tenant.
func (s *MessageService) Record(ctx context.Context, tenantID, contactID uuid.UUID, req RecordMessageRequest) (*MessageResponse, error) {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return nil, err
	}

	if _, err := repos.Contacts.FindByID(ctx, contactID); err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.ErrReferenceNotFound
		}
		return nil, err
	}

	message, err := crm.NewMessage(tenantID, contactID, crm.MessageDirection(req.Direction), req.Content)
	if err != nil {
		return nil, err
	}
	if err := repos.Messages.Save(ctx, message); err != nil {
		return nil, err
	}

	// A failed subscriber never rolls back the recorded message.
	_ = s.publisher.Publish(ctx, message.GetDomainEvents()...)
	message.ClearDomainEvents()

	response := ToMessageResponse(message)
	return &response, nil
}

// ListByContact returns a contact's messages, newest first
func (s *MessageService) ListByContact(ctx context.Context, tenantID, contactID uuid.UUID, filter shared.Filter) ([]MessageResponse, error) {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return nil, err
	}

	messages, err := repos.Messages.FindByContact(ctx, contactID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]MessageResponse, len(messages))
	for i := range messages {
		items[i] = ToMessageResponse(&messages[i])
	}
	return items, nil
}

// MarkConversationRead marks every inbound message of a contact read
func (s *MessageService) MarkConversationRead(ctx context.Context, tenantID, contactID uuid.UUID) error {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return err
	}
	if _, err := repos.Contacts.FindByID(ctx, contactID); err != nil {
		return err
	}
	return repos.Messages.MarkReadByContact(ctx, contactID)
}
