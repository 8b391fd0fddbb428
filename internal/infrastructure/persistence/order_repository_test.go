package persistence

import (
	"context"
	"testing"

	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/craftbase/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOrder(t *testing.T, tenantID, contactID uuid.UUID, lines ...uuid.UUID) *trade.Order {
	t.Helper()
	order := trade.NewOrder(tenantID, contactID)
	for _, productID := range lines {
		_, err := order.AddItem(productID, decimal.NewFromInt(2), decimal.RequireFromString("4.00"))
		require.NoError(t, err)
	}
	return order
}

func TestGormOrderRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	tenantID := uuid.New()
	repo := NewGormOrderRepository(db, tenantID)
	ctx := context.Background()

	contactID := uuid.New()
	productID := uuid.New()
	order := mustOrder(t, tenantID, contactID, productID)
	require.NoError(t, repo.Save(ctx, order))

	t.Run("preloads items", func(t *testing.T) {
		found, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 1)
		assert.Equal(t, productID, found.Items[0].ProductID)
		assert.True(t, found.Total.Equal(decimal.RequireFromString("8.00")))
	})

	t.Run("lists by contact", func(t *testing.T) {
		found, err := repo.FindByContact(ctx, contactID, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, found, 1)

		none, err := repo.FindByContact(ctx, uuid.New(), shared.Filter{})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("filters by status", func(t *testing.T) {
		found, err := repo.FindAll(ctx, shared.Filter{
			Filters: map[string]interface{}{"status": string(trade.OrderStatusPending)},
		})
		require.NoError(t, err)
		assert.Len(t, found, 1)

		none, err := repo.FindAll(ctx, shared.Filter{
			Filters: map[string]interface{}{"status": string(trade.OrderStatusDelivered)},
		})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("other tenant cannot read", func(t *testing.T) {
		other := NewGormOrderRepository(db, uuid.New())
		_, err := other.FindByID(ctx, order.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormOrderRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	tenantID := uuid.New()
	repo := NewGormOrderRepository(db, tenantID)
	ctx := context.Background()

	order := mustOrder(t, tenantID, uuid.New(), uuid.New(), uuid.New())
	require.NoError(t, repo.Save(ctx, order))

	items, err := repo.ListItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.NoError(t, repo.Delete(ctx, order.ID))

	_, err = repo.FindByID(ctx, order.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	items, err = repo.ListItems(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
}
