package catalog

import (
	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRecipeComponent links a product to a recipe whose output it
// consumes: quantity units of recipe output go into one unit of product.
type ProductRecipeComponent struct {
	shared.BaseEntity
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	RecipeID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (ProductRecipeComponent) TableName() string {
	return "product_recipe_components"
}

// NewProductRecipeComponent creates a recipe component row
func NewProductRecipeComponent(tenantID, productID, recipeID uuid.UUID, quantity decimal.Decimal) (*ProductRecipeComponent, error) {
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Component quantity must be positive")
	}
	return &ProductRecipeComponent{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		ProductID:  productID,
		RecipeID:   recipeID,
		Quantity:   quantity,
	}, nil
}

// ProductPackagingComponent links a product to a packaging-kind ingredient
// consumed per unit of product.
type ProductPackagingComponent struct {
	shared.BaseEntity
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	IngredientID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (ProductPackagingComponent) TableName() string {
	return "product_packaging_components"
}

// NewProductPackagingComponent creates a packaging component row
func NewProductPackagingComponent(tenantID, productID, ingredientID uuid.UUID, quantity decimal.Decimal) (*ProductPackagingComponent, error) {
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Component quantity must be positive")
	}
	return &ProductPackagingComponent{
		BaseEntity:   shared.NewBaseEntity(),
		TenantID:     tenantID,
		ProductID:    productID,
		IngredientID: ingredientID,
		Quantity:     quantity,
	}, nil
}
