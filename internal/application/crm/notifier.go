package crm

import (
	"context"

	"github.com/craftbase/backend/internal/domain/crm"
	"github.com/craftbase/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OutboundNotifier subscribes to recorded outbound messages and hands them
// to a delivery channel. Delivery is observational: it runs after the
// message is durably written and cannot veto the write.
type OutboundNotifier struct {
	logger  *zap.Logger
	deliver func(ctx context.Context, event *crm.MessageRecordedEvent) error
}

// NewOutboundNotifier creates a notifier with the given delivery function.
// A nil deliver function logs and drops, which is the development default.
func NewOutboundNotifier(logger *zap.Logger, deliver func(ctx context.Context, event *crm.MessageRecordedEvent) error) *OutboundNotifier {
	return &OutboundNotifier{
		logger:  logger,
		deliver: deliver,
	}
}

// EventTypes returns the event types this handler is interested in
func (n *OutboundNotifier) EventTypes() []string {
	return []string{crm.EventTypeMessageRecorded}
}

// Handle processes a recorded-message event
func (n *OutboundNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	recorded, ok := event.(*crm.MessageRecordedEvent)
	if !ok {
		return nil
	}
	if recorded.Direction != crm.MessageOutbound {
		return nil
	}

	if n.deliver == nil {
		n.logger.Info("outbound message recorded, no delivery channel configured",
			zap.String("contact_id", recorded.ContactID.String()),
			zap.String("message_id", recorded.AggregateID().String()),
		)
		return nil
	}
	return n.deliver(ctx, recorded)
}

// Ensure OutboundNotifier implements EventHandler
var _ shared.EventHandler = (*OutboundNotifier)(nil)
