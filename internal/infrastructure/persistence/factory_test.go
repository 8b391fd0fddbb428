package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/craftbase/backend/internal/domain/catalog"
	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/craftbase/backend/internal/domain/tenant"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTenantFactory_Bind(t *testing.T) {
	db := setupTestDB(t)
	factory := NewGormTenantFactory(db)

	t.Run("binds a full repository set", func(t *testing.T) {
		repos, err := factory.Bind(uuid.New())
		require.NoError(t, err)

		assert.NotNil(t, repos.Ingredients)
		assert.NotNil(t, repos.Recipes)
		assert.NotNil(t, repos.Products)
		assert.NotNil(t, repos.Components)
		assert.NotNil(t, repos.Contacts)
		assert.NotNil(t, repos.Messages)
		assert.NotNil(t, repos.Orders)
	})

	t.Run("rejects the nil tenant", func(t *testing.T) {
		_, err := factory.Bind(uuid.Nil)
		assert.ErrorIs(t, err, shared.ErrTenantRequired)
	})
}

func TestGormTenantFactory_Transaction(t *testing.T) {
	db := setupTestDB(t)
	factory := NewGormTenantFactory(db)
	tenantID := uuid.New()
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		var id uuid.UUID
		err := factory.Transaction(ctx, tenantID, func(repos *tenant.Repositories) error {
			ing, err := catalog.NewIngredient(tenantID, "Flour", catalog.IngredientKindRaw, "g")
			if err != nil {
				return err
			}
			id = ing.ID
			return repos.Ingredients.Save(ctx, ing)
		})
		require.NoError(t, err)

		repos, err := factory.Bind(tenantID)
		require.NoError(t, err)
		_, err = repos.Ingredients.FindByID(ctx, id)
		assert.NoError(t, err)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		var id uuid.UUID
		err := factory.Transaction(ctx, tenantID, func(repos *tenant.Repositories) error {
			ing, err := catalog.NewIngredient(tenantID, "Sugar", catalog.IngredientKindRaw, "g")
			if err != nil {
				return err
			}
			id = ing.ID
			if err := repos.Ingredients.Save(ctx, ing); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		repos, err := factory.Bind(tenantID)
		require.NoError(t, err)
		_, err = repos.Ingredients.FindByID(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects the nil tenant", func(t *testing.T) {
		err := factory.Transaction(ctx, uuid.Nil, func(*tenant.Repositories) error {
			return nil
		})
		assert.ErrorIs(t, err, shared.ErrTenantRequired)
	})
}
