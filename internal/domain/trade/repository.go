package trade

import (
	"context"

	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository provides access to the bound tenant's orders. Reads load
// the order's items; listing is recency-descending.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	FindByContact(ctx context.Context, contactID uuid.UUID, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context) (int64, error)
	// Save persists the order header and its items.
	Save(ctx context.Context, order *Order) error
	ListItems(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error)
	// Delete removes the order and its item rows. Stock restoration is
	// the caller's responsibility and runs in the same transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}
