package persistence

import (
	"context"
	"errors"

	"github.com/craftbase/backend/internal/domain/catalog"
	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRecipeRepository implements RecipeRepository using GORM,
// bound to a single tenant at construction time.
type GormRecipeRepository struct {
	db       *gorm.DB
	tenantID uuid.UUID
}

// NewGormRecipeRepository creates a recipe repository bound to a tenant
func NewGormRecipeRepository(db *gorm.DB, tenantID uuid.UUID) *GormRecipeRepository {
	return &GormRecipeRepository{db: db, tenantID: tenantID}
}

func (r *GormRecipeRepository) scoped(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Where("tenant_id = ?", r.tenantID)
}

// FindByID finds a recipe with its items within the bound tenant
func (r *GormRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Recipe, error) {
	var recipe catalog.Recipe
	if err := r.scoped(ctx).Preload("Items").First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// FindByIDs finds multiple recipes with their items
func (r *GormRecipeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Recipe, error) {
	if len(ids) == 0 {
		return []catalog.Recipe{}, nil
	}
	var recipes []catalog.Recipe
	if err := r.scoped(ctx).Preload("Items").Where("id IN ?", ids).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// FindByProductID finds the recipe linked to a product
func (r *GormRecipeRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*catalog.Recipe, error) {
	var recipe catalog.Recipe
	if err := r.scoped(ctx).Preload("Items").First(&recipe, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// FindByIngredient returns every recipe with at least one line referencing
// the ingredient
func (r *GormRecipeRepository) FindByIngredient(ctx context.Context, ingredientID uuid.UUID) ([]catalog.Recipe, error) {
	var recipeIDs []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&catalog.RecipeItem{}).
		Where("tenant_id = ? AND ingredient_id = ?", r.tenantID, ingredientID).
		Distinct().
		Pluck("recipe_id", &recipeIDs).Error; err != nil {
		return nil, err
	}
	return r.FindByIDs(ctx, recipeIDs)
}

// FindAll finds all recipes matching the filter, items included
func (r *GormRecipeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Recipe, error) {
	var recipes []catalog.Recipe
	query := r.scoped(ctx).Model(&catalog.Recipe{}).Preload("Items")

	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if err := query.Order("name ASC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Count counts the bound tenant's recipes
func (r *GormRecipeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.scoped(ctx).Model(&catalog.Recipe{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a recipe header together with its items
func (r *GormRecipeRepository) Save(ctx context.Context, recipe *catalog.Recipe) error {
	recipe.TenantID = r.tenantID
	for i := range recipe.Items {
		recipe.Items[i].TenantID = r.tenantID
		recipe.Items[i].RecipeID = recipe.ID
	}
	return r.db.WithContext(ctx).Save(recipe).Error
}

// ReplaceItems atomically swaps the recipe's line set
func (r *GormRecipeRepository) ReplaceItems(ctx context.Context, recipeID uuid.UUID, items []catalog.RecipeItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Delete(&catalog.RecipeItem{}, "tenant_id = ? AND recipe_id = ?", r.tenantID, recipeID).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].TenantID = r.tenantID
			items[i].RecipeID = recipeID
		}
		return tx.Create(&items).Error
	})
}

// RemoveItemsByIngredient deletes every line referencing the ingredient
// across all of the tenant's recipes
func (r *GormRecipeRepository) RemoveItemsByIngredient(ctx context.Context, ingredientID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&catalog.RecipeItem{}, "tenant_id = ? AND ingredient_id = ?", r.tenantID, ingredientID).Error
}

// Delete removes the recipe and its item rows
func (r *GormRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&catalog.Recipe{}, "tenant_id = ? AND id = ?", r.tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Delete(&catalog.RecipeItem{}, "tenant_id = ? AND recipe_id = ?", r.tenantID, id).Error
	})
}

// Ensure GormRecipeRepository implements RecipeRepository
var _ catalog.RecipeRepository = (*GormRecipeRepository)(nil)
