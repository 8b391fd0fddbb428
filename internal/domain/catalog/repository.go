package catalog

import (
	"context"

	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repositories in this package are tenant-bound capability objects: every
// implementation is constructed for exactly one tenant and cannot express
// an unscoped query. A lookup by an id owned by another tenant behaves
// exactly like a missing id.

// IngredientRepository provides access to the bound tenant's ingredients
type IngredientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Ingredient, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Ingredient, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Ingredient, error)
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, ingredient *Ingredient) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RecipeRepository provides access to the bound tenant's recipes and their
// ingredient lines. Reads always load the line items.
type RecipeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Recipe, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Recipe, error)
	FindByProductID(ctx context.Context, productID uuid.UUID) (*Recipe, error)
	// FindByIngredient returns every recipe with at least one line
	// referencing the ingredient.
	FindByIngredient(ctx context.Context, ingredientID uuid.UUID) ([]Recipe, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Recipe, error)
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, recipe *Recipe) error
	// ReplaceItems atomically swaps the recipe's line set.
	ReplaceItems(ctx context.Context, recipeID uuid.UUID, items []RecipeItem) error
	// RemoveItemsByIngredient deletes every line referencing the
	// ingredient across all recipes (ingredient cascade).
	RemoveItemsByIngredient(ctx context.Context, ingredientID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository provides access to the bound tenant's products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, product *Product) error
	// AdjustStock applies a signed delta as a relative update at the
	// storage layer so concurrent adjustments never lose writes.
	AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
	// UpdateCost writes the cached cost snapshot without touching other fields.
	UpdateCost(ctx context.Context, id uuid.UUID, cost decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ComponentRepository manages the component rows that tie products to
// recipes and packaging ingredients
type ComponentRepository interface {
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]ProductRecipeComponent, []ProductPackagingComponent, error)
	// ReplaceForProduct deletes the product's current component rows and
	// inserts the new set.
	ReplaceForProduct(ctx context.Context, productID uuid.UUID, recipeComponents []ProductRecipeComponent, packagingComponents []ProductPackagingComponent) error
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
	FindRecipeComponentsByRecipe(ctx context.Context, recipeID uuid.UUID) ([]ProductRecipeComponent, error)
	DeleteRecipeComponentsByRecipe(ctx context.Context, recipeID uuid.UUID) error
	FindPackagingByIngredient(ctx context.Context, ingredientID uuid.UUID) ([]ProductPackagingComponent, error)
	DeletePackagingByIngredient(ctx context.Context, ingredientID uuid.UUID) error
}
