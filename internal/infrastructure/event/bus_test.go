package event

import (
	"context"
	"errors"
	"testing"

	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubEvent struct {
	shared.BaseDomainEvent
}

func newStubEvent(eventType string) *stubEvent {
	return &stubEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Stub", uuid.New(), uuid.New()),
	}
}

type stubHandler struct {
	types    []string
	received []shared.DomainEvent
	err      error
	panics   bool
}

func (h *stubHandler) EventTypes() []string { return h.types }

func (h *stubHandler) Handle(_ context.Context, e shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.received = append(h.received, e)
	return h.err
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("dispatches to matching handlers only", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		orders := &stubHandler{types: []string{"trade.order.created"}}
		contacts := &stubHandler{types: []string{"crm.contact.created"}}
		bus.Subscribe(orders)
		bus.Subscribe(contacts)

		require.NoError(t, bus.Publish(ctx, newStubEvent("trade.order.created")))

		assert.Len(t, orders.received, 1)
		assert.Empty(t, contacts.received)
	})

	t.Run("explicit subscription types override the handler's own", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		h := &stubHandler{types: []string{"crm.contact.created"}}
		bus.Subscribe(h, "crm.message.recorded")

		require.NoError(t, bus.Publish(ctx, newStubEvent("crm.contact.created")))
		assert.Empty(t, h.received)

		require.NoError(t, bus.Publish(ctx, newStubEvent("crm.message.recorded")))
		assert.Len(t, h.received, 1)
	})

	t.Run("handler without event types receives everything", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		audit := &stubHandler{}
		bus.Subscribe(audit)

		require.NoError(t, bus.Publish(ctx,
			newStubEvent("crm.contact.created"),
			newStubEvent("crm.message.recorded"),
		))

		assert.Len(t, audit.received, 2)
	})

	t.Run("a failing handler does not block the rest", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &stubHandler{types: []string{"crm.message.recorded"}, err: errors.New("boom")}
		healthy := &stubHandler{types: []string{"crm.message.recorded"}}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, newStubEvent("crm.message.recorded")))

		assert.Len(t, healthy.received, 1)
	})

	t.Run("a panicking handler is contained", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		panicking := &stubHandler{types: []string{"crm.message.recorded"}, panics: true}
		healthy := &stubHandler{types: []string{"crm.message.recorded"}}
		bus.Subscribe(panicking)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, newStubEvent("crm.message.recorded")))

		assert.Len(t, healthy.received, 1)
	})
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := &stubHandler{types: []string{"crm.message.recorded"}}
	bus.Subscribe(h)

	require.NoError(t, bus.Publish(context.Background(), newStubEvent("crm.message.recorded")))
	require.Len(t, h.received, 1)

	bus.Unsubscribe(h)

	require.NoError(t, bus.Publish(context.Background(), newStubEvent("crm.message.recorded")))
	assert.Len(t, h.received, 1)
}
