package crm

import (
	"context"
	"testing"

	"github.com/craftbase/backend/internal/domain/catalog"
	domcrm "github.com/craftbase/backend/internal/domain/crm"
	"github.com/craftbase/backend/internal/domain/identity"
	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/craftbase/backend/internal/domain/trade"
	"github.com/craftbase/backend/internal/infrastructure/event"
	"github.com/craftbase/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// recordingHandler captures every event dispatched to it
type recordingHandler struct {
	types  []string
	events []shared.DomainEvent
}

func (h *recordingHandler) EventTypes() []string { return h.types }

func (h *recordingHandler) Handle(_ context.Context, e shared.DomainEvent) error {
	h.events = append(h.events, e)
	return nil
}

type crmEnv struct {
	contacts *ContactService
	messages *MessageService
	bus      *event.InMemoryEventBus
	tenantID uuid.UUID
}

func newCrmEnv(t *testing.T) crmEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&identity.Tenant{},
		&catalog.Ingredient{},
		&catalog.Recipe{},
		&catalog.RecipeItem{},
		&catalog.Product{},
		&catalog.ProductRecipeComponent{},
		&catalog.ProductPackagingComponent{},
		&domcrm.Contact{},
		&domcrm.Message{},
		&trade.Order{},
		&trade.OrderItem{},
	))

	factory := persistence.NewGormTenantFactory(db)
	bus := event.NewInMemoryEventBus(zap.NewNop())
	return crmEnv{
		contacts: NewContactService(factory, bus),
		messages: NewMessageService(factory, bus),
		bus:      bus,
		tenantID: uuid.New(),
	}
}

func (e crmEnv) createContact(t *testing.T, name string) ContactResponse {
	t.Helper()
	resp, err := e.contacts.Create(context.Background(), e.tenantID, CreateContactRequest{
		Name:  name,
		Phone: "+49 170 1234567",
	})
	require.NoError(t, err)
	return *resp
}

func (e crmEnv) recordMessage(t *testing.T, contactID uuid.UUID, direction, content string) MessageResponse {
	t.Helper()
	resp, err := e.messages.Record(context.Background(), e.tenantID, contactID, RecordMessageRequest{
		Direction: direction,
		Content:   content,
	})
	require.NoError(t, err)
	return *resp
}

func TestContactService_Create(t *testing.T) {
	env := newCrmEnv(t)
	ctx := context.Background()

	t.Run("persists and publishes creation event", func(t *testing.T) {
		captured := &recordingHandler{types: []string{domcrm.EventTypeContactCreated}}
		env.bus.Subscribe(captured)

		value := decimal.RequireFromString("250.00")
		resp, err := env.contacts.Create(ctx, env.tenantID, CreateContactRequest{
			Name:  "Bakery Nord",
			Phone: "+49 30 5551234",
			Tags:  "wholesale, weekly",
			Stage: "negotiating",
			Value: &value,
		})
		require.NoError(t, err)

		assert.Equal(t, "negotiating", resp.Stage)
		assert.Equal(t, []string{"wholesale", "weekly"}, resp.Tags)

		found, err := env.contacts.GetByID(ctx, env.tenantID, resp.ID)
		require.NoError(t, err)
		assert.Equal(t, "Bakery Nord", found.Name)
		assert.True(t, value.Equal(found.Value))

		require.Len(t, captured.events, 1)
		created, ok := captured.events[0].(*domcrm.ContactCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, resp.ID, created.AggregateID())
		assert.Equal(t, domcrm.DealStageNegotiating, created.Stage)
	})

	t.Run("rejects invalid stage", func(t *testing.T) {
		_, err := env.contacts.Create(ctx, env.tenantID, CreateContactRequest{
			Name:  "Oddball",
			Stage: "daydreaming",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	})
}

func TestContactService_Update(t *testing.T) {
	env := newCrmEnv(t)
	ctx := context.Background()
	contact := env.createContact(t, "Cafe Mitte")

	t.Run("applies partial changes", func(t *testing.T) {
		stage := "customer"
		notes := "orders every friday"
		resp, err := env.contacts.Update(ctx, env.tenantID, contact.ID, UpdateContactRequest{
			Stage: &stage,
			Notes: &notes,
		})
		require.NoError(t, err)
		assert.Equal(t, "customer", resp.Stage)
		assert.Equal(t, notes, resp.Notes)
		// untouched fields survive
		assert.Equal(t, "Cafe Mitte", resp.Name)
	})

	t.Run("missing contact reports not found", func(t *testing.T) {
		name := "Ghost"
		_, err := env.contacts.Update(ctx, env.tenantID, uuid.New(), UpdateContactRequest{Name: &name})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestContactService_Delete_KeepsConversation(t *testing.T) {
	env := newCrmEnv(t)
	ctx := context.Background()

	contact := env.createContact(t, "Deli Sued")
	env.recordMessage(t, contact.ID, "in", "do you deliver on weekends?")
	env.recordMessage(t, contact.ID, "out", "yes, saturdays until noon")

	require.NoError(t, env.contacts.Delete(ctx, env.tenantID, contact.ID))

	_, err := env.contacts.GetByID(ctx, env.tenantID, contact.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// The conversation history stays queryable by contact id.
	history, err := env.messages.ListByContact(ctx, env.tenantID, contact.ID, shared.Filter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestContactService_ListWithLastMessage(t *testing.T) {
	env := newCrmEnv(t)
	ctx := context.Background()

	quiet := env.createContact(t, "Quiet Contact")
	busy := env.createContact(t, "Busy Contact")
	env.recordMessage(t, busy.ID, "out", "your order shipped")
	env.recordMessage(t, busy.ID, "in", "great, thanks")
	env.recordMessage(t, busy.ID, "in", "can I add two more jars?")

	result, err := env.contacts.ListWithLastMessage(ctx, env.tenantID, shared.Filter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)

	byID := make(map[uuid.UUID]ContactConversationResponse, len(result.Items))
	for _, item := range result.Items {
		byID[item.ID] = item
	}

	quietConv := byID[quiet.ID]
	assert.Nil(t, quietConv.LastMessage)
	assert.Zero(t, quietConv.UnreadCount)

	busyConv := byID[busy.ID]
	require.NotNil(t, busyConv.LastMessage)
	assert.Equal(t, "can I add two more jars?", busyConv.LastMessage.Content)
	assert.Equal(t, int64(2), busyConv.UnreadCount)
}

func TestMessageService_Record(t *testing.T) {
	env := newCrmEnv(t)
	ctx := context.Background()
	contact := env.createContact(t, "Restaurant Ost")

	t.Run("records and publishes after the write", func(t *testing.T) {
		captured := &recordingHandler{types: []string{domcrm.EventTypeMessageRecorded}}
		env.bus.Subscribe(captured)

		resp := env.recordMessage(t, contact.ID, "out", "invoice attached")
		assert.Equal(t, "pending", resp.Status)
		assert.False(t, resp.SentAt.IsZero())

		require.Len(t, captured.events, 1)
		recorded, ok := captured.events[0].(*domcrm.MessageRecordedEvent)
		require.True(t, ok)
		assert.Equal(t, contact.ID, recorded.ContactID)
		assert.Equal(t, domcrm.MessageOutbound, recorded.Direction)
	})

	t.Run("unknown contact reports broken reference", func(t *testing.T) {
		_, err := env.messages.Record(ctx, env.tenantID, uuid.New(), RecordMessageRequest{
			Direction: "in",
			Content:   "hello?",
		})
		assert.ErrorIs(t, err, shared.ErrReferenceNotFound)
	})

	t.Run("another tenant's contact is invisible", func(t *testing.T) {
		_, err := env.messages.Record(ctx, uuid.New(), contact.ID, RecordMessageRequest{
			Direction: "in",
			Content:   "hello?",
		})
		assert.ErrorIs(t, err, shared.ErrReferenceNotFound)
	})
}

func TestMessageService_MarkConversationRead(t *testing.T) {
	env := newCrmEnv(t)
	ctx := context.Background()
	contact := env.createContact(t, "Kiosk West")

	env.recordMessage(t, contact.ID, "in", "still open today?")
	env.recordMessage(t, contact.ID, "in", "hello?")
	env.recordMessage(t, contact.ID, "out", "until six")

	require.NoError(t, env.messages.MarkConversationRead(ctx, env.tenantID, contact.ID))

	result, err := env.contacts.ListWithLastMessage(ctx, env.tenantID, shared.Filter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Zero(t, result.Items[0].UnreadCount)

	t.Run("missing contact reports not found", func(t *testing.T) {
		err := env.messages.MarkConversationRead(ctx, env.tenantID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOutboundNotifier(t *testing.T) {
	contactID := uuid.New()
	tenantID := uuid.New()

	newEvent := func(direction domcrm.MessageDirection) *domcrm.MessageRecordedEvent {
		msg, err := domcrm.NewMessage(tenantID, contactID, direction, "pickup ready")
		require.NoError(t, err)
		return domcrm.NewMessageRecordedEvent(msg)
	}

	t.Run("delivers outbound messages", func(t *testing.T) {
		var delivered []*domcrm.MessageRecordedEvent
		notifier := NewOutboundNotifier(zap.NewNop(), func(_ context.Context, e *domcrm.MessageRecordedEvent) error {
			delivered = append(delivered, e)
			return nil
		})

		require.NoError(t, notifier.Handle(context.Background(), newEvent(domcrm.MessageOutbound)))
		require.Len(t, delivered, 1)
		assert.Equal(t, contactID, delivered[0].ContactID)
	})

	t.Run("ignores inbound messages", func(t *testing.T) {
		var delivered int
		notifier := NewOutboundNotifier(zap.NewNop(), func(context.Context, *domcrm.MessageRecordedEvent) error {
			delivered++
			return nil
		})

		require.NoError(t, notifier.Handle(context.Background(), newEvent(domcrm.MessageInbound)))
		assert.Zero(t, delivered)
	})

	t.Run("nil delivery channel drops without error", func(t *testing.T) {
		notifier := NewOutboundNotifier(zap.NewNop(), nil)
		assert.NoError(t, notifier.Handle(context.Background(), newEvent(domcrm.MessageOutbound)))
	})
}
