package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecipe(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates recipe with valid inputs", func(t *testing.T) {
		recipe, err := NewRecipe(tenantID, "Sourdough", decimal.NewFromInt(2), "loaf")
		require.NoError(t, err)

		assert.Equal(t, tenantID, recipe.TenantID)
		assert.Equal(t, "Sourdough", recipe.Name)
		assert.True(t, recipe.Yield.Equal(decimal.NewFromInt(2)))
		assert.Equal(t, "loaf", recipe.YieldUnit)
		assert.Nil(t, recipe.ProductID)
		assert.Empty(t, recipe.Items)
		assert.NotEmpty(t, recipe.ID)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewRecipe(tenantID, "  ", decimal.NewFromInt(1), "loaf")
		require.Error(t, err)
	})

	t.Run("fails with empty yield unit", func(t *testing.T) {
		_, err := NewRecipe(tenantID, "Sourdough", decimal.NewFromInt(1), "")
		require.Error(t, err)
	})

	t.Run("non-positive yield defaults to one", func(t *testing.T) {
		recipe, err := NewRecipe(tenantID, "Sourdough", decimal.Zero, "loaf")
		require.NoError(t, err)
		assert.True(t, recipe.Yield.Equal(decimal.NewFromInt(1)))
	})
}

func TestRecipe_AddItem(t *testing.T) {
	tenantID := uuid.New()

	t.Run("appends line stamped with tenant and recipe", func(t *testing.T) {
		recipe, err := NewRecipe(tenantID, "Sourdough", decimal.NewFromInt(1), "loaf")
		require.NoError(t, err)

		ingredientID := uuid.New()
		item, err := recipe.AddItem(ingredientID, decimal.NewFromInt(3))
		require.NoError(t, err)

		assert.Equal(t, tenantID, item.TenantID)
		assert.Equal(t, recipe.ID, item.RecipeID)
		assert.Equal(t, ingredientID, item.IngredientID)
		assert.Len(t, recipe.Items, 1)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		recipe, err := NewRecipe(tenantID, "Sourdough", decimal.NewFromInt(1), "loaf")
		require.NoError(t, err)

		_, err = recipe.AddItem(uuid.New(), decimal.Zero)
		require.Error(t, err)
		assert.Empty(t, recipe.Items)
	})
}

func TestRecipe_LinkProduct(t *testing.T) {
	tenantID := uuid.New()

	t.Run("links an unlinked recipe", func(t *testing.T) {
		recipe, err := NewRecipe(tenantID, "Sourdough", decimal.NewFromInt(1), "loaf")
		require.NoError(t, err)

		productID := uuid.New()
		require.NoError(t, recipe.LinkProduct(productID))
		require.NotNil(t, recipe.ProductID)
		assert.Equal(t, productID, *recipe.ProductID)
	})

	t.Run("rejects second link", func(t *testing.T) {
		recipe, err := NewRecipe(tenantID, "Sourdough", decimal.NewFromInt(1), "loaf")
		require.NoError(t, err)
		require.NoError(t, recipe.LinkProduct(uuid.New()))

		err = recipe.LinkProduct(uuid.New())
		require.Error(t, err)
	})

	t.Run("unlink allows relinking", func(t *testing.T) {
		recipe, err := NewRecipe(tenantID, "Sourdough", decimal.NewFromInt(1), "loaf")
		require.NoError(t, err)
		require.NoError(t, recipe.LinkProduct(uuid.New()))

		recipe.UnlinkProduct()
		assert.Nil(t, recipe.ProductID)
		require.NoError(t, recipe.LinkProduct(uuid.New()))
	})
}
