package persistence

import (
	"context"

	"github.com/craftbase/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormComponentRepository implements ComponentRepository using GORM,
// bound to a single tenant at construction time.
type GormComponentRepository struct {
	db       *gorm.DB
	tenantID uuid.UUID
}

// NewGormComponentRepository creates a component repository bound to a tenant
func NewGormComponentRepository(db *gorm.DB, tenantID uuid.UUID) *GormComponentRepository {
	return &GormComponentRepository{db: db, tenantID: tenantID}
}

// FindByProduct returns the product's recipe and packaging component rows
func (r *GormComponentRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.ProductRecipeComponent, []catalog.ProductPackagingComponent, error) {
	var recipeComponents []catalog.ProductRecipeComponent
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ?", r.tenantID, productID).
		Find(&recipeComponents).Error; err != nil {
		return nil, nil, err
	}

	var packagingComponents []catalog.ProductPackagingComponent
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ?", r.tenantID, productID).
		Find(&packagingComponents).Error; err != nil {
		return nil, nil, err
	}

	return recipeComponents, packagingComponents, nil
}

// ReplaceForProduct deletes the product's current component rows and
// inserts the new set
func (r *GormComponentRepository) ReplaceForProduct(ctx context.Context, productID uuid.UUID, recipeComponents []catalog.ProductRecipeComponent, packagingComponents []catalog.ProductPackagingComponent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteComponentsByProduct(tx, r.tenantID, productID); err != nil {
			return err
		}
		if len(recipeComponents) > 0 {
			for i := range recipeComponents {
				recipeComponents[i].TenantID = r.tenantID
				recipeComponents[i].ProductID = productID
			}
			if err := tx.Create(&recipeComponents).Error; err != nil {
				return err
			}
		}
		if len(packagingComponents) > 0 {
			for i := range packagingComponents {
				packagingComponents[i].TenantID = r.tenantID
				packagingComponents[i].ProductID = productID
			}
			if err := tx.Create(&packagingComponents).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteByProduct removes all component rows of a product
func (r *GormComponentRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	return deleteComponentsByProduct(r.db.WithContext(ctx), r.tenantID, productID)
}

// FindRecipeComponentsByRecipe returns every recipe component row
// referencing the recipe
func (r *GormComponentRepository) FindRecipeComponentsByRecipe(ctx context.Context, recipeID uuid.UUID) ([]catalog.ProductRecipeComponent, error) {
	var components []catalog.ProductRecipeComponent
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND recipe_id = ?", r.tenantID, recipeID).
		Find(&components).Error; err != nil {
		return nil, err
	}
	return components, nil
}

// DeleteRecipeComponentsByRecipe removes every recipe component row
// referencing the recipe
func (r *GormComponentRepository) DeleteRecipeComponentsByRecipe(ctx context.Context, recipeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&catalog.ProductRecipeComponent{}, "tenant_id = ? AND recipe_id = ?", r.tenantID, recipeID).Error
}

// FindPackagingByIngredient returns every packaging component row
// referencing the ingredient
func (r *GormComponentRepository) FindPackagingByIngredient(ctx context.Context, ingredientID uuid.UUID) ([]catalog.ProductPackagingComponent, error) {
	var components []catalog.ProductPackagingComponent
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND ingredient_id = ?", r.tenantID, ingredientID).
		Find(&components).Error; err != nil {
		return nil, err
	}
	return components, nil
}

// DeletePackagingByIngredient removes every packaging component row
// referencing the ingredient
func (r *GormComponentRepository) DeletePackagingByIngredient(ctx context.Context, ingredientID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&catalog.ProductPackagingComponent{}, "tenant_id = ? AND ingredient_id = ?", r.tenantID, ingredientID).Error
}

func deleteComponentsByProduct(db *gorm.DB, tenantID, productID uuid.UUID) error {
	if err := db.
		Delete(&catalog.ProductRecipeComponent{}, "tenant_id = ? AND product_id = ?", tenantID, productID).Error; err != nil {
		return err
	}
	return db.
		Delete(&catalog.ProductPackagingComponent{}, "tenant_id = ? AND product_id = ?", tenantID, productID).Error
}

// Ensure GormComponentRepository implements ComponentRepository
var _ catalog.ComponentRepository = (*GormComponentRepository)(nil)
