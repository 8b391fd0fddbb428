package crm

import (
	"context"
	"errors"

	"github.com/craftbase/backend/internal/domain/crm"
	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/craftbase/backend/internal/domain/tenant"
	"github.com/google/uuid"
)

// ContactService handles contact-related business operations
type ContactService struct {
	factory   tenant.Factory
	publisher shared.EventPublisher
}

// NewContactService creates a new ContactService
func NewContactService(factory tenant.Factory, publisher shared.EventPublisher) *ContactService {
	return &ContactService{
		factory:   factory,
		publisher: publisher,
	}
}

// Create creates a new contact and publishes its creation event
func (s *ContactService) Create(ctx context.Context, tenantID uuid.UUID, req CreateContactRequest) (*ContactResponse, error) {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return nil, err
	}

	contact, err := crm.NewContact(tenantID, req.Name, req.Phone)
	if err != nil {
		return nil, err
	}
	contact.Email = req.Email
	contact.Tags = req.Tags
	contact.Notes = req.Notes
	if req.Stage != "" {
		if err := contact.MoveToStage(crm.DealStage(req.Stage)); err != nil {
			return nil, err
		}
	}
	if req.Value != nil {
		if err := contact.SetValue(*req.Value); err != nil {
			return nil, err
		}
	}
	contact.AddDomainEvent(crm.NewContactCreatedEvent(contact))

	if err := repos.Contacts.Save(ctx, contact); err != nil {
		return nil, err
	}

	// Events fire after the durable write; handlers observe, they never veto.
	_ = s.publisher.Publish(ctx, contact.GetDomainEvents()...)
	contact.ClearDomainEvents()

	response := ToContactResponse(contact)
	return &response, nil
}

// GetByID retrieves a contact by ID
func (s *ContactService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ContactResponse, error) {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return nil, err
	}

	contact, err := repos.Contacts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// List retrieves a paginated list of contacts
func (s *ContactService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[ContactResponse], error) {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return nil, err
	}

	contacts, err := repos.Contacts.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := repos.Contacts.Count(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]ContactResponse, len(contacts))
	for i := range contacts {
		items[i] = ToContactResponse(&contacts[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListWithLastMessage retrieves contacts enriched with their latest
// message and unread count. The enrichment is computed per request.
func (s *ContactService) ListWithLastMessage(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[ContactConversationResponse], error) {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return nil, err
	}

	contacts, err := repos.Contacts.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := repos.Contacts.Count(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]ContactConversationResponse, len(contacts))
	for i := range contacts {
		item := ContactConversationResponse{
			ContactResponse: ToContactResponse(&contacts[i]),
		}

		last, err := repos.Messages.LatestByContact(ctx, contacts[i].ID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if last != nil {
			resp := ToMessageResponse(last)
			item.LastMessage = &resp
		}

		unread, err := repos.Messages.CountUnreadByContact(ctx, contacts[i].ID)
		if err != nil {
			return nil, err
		}
		item.UnreadCount = unread

		items[i] = item
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update applies a partial update to a contact
func (s *ContactService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateContactRequest) (*ContactResponse, error) {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return nil, err
	}

	contact, err := repos.Contacts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := contact.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Tags != nil {
		contact.Tags = *req.Tags
	}
	if req.Stage != nil {
		if err := contact.MoveToStage(crm.DealStage(*req.Stage)); err != nil {
			return nil, err
		}
	}
	if req.Value != nil {
		if err := contact.SetValue(*req.Value); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		contact.Notes = *req.Notes
	}
	contact.Touch()

	if err := repos.Contacts.Save(ctx, contact); err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// Delete removes a contact. The contact's messages and orders remain; a
// deleted contact's history stays queryable by id.
func (s *ContactService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return err
	}
	return repos.Contacts.Delete(ctx, id)
}
