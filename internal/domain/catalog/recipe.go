package catalog

import (
	"strings"
	"time"

	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Recipe describes how a batch of output is produced from ingredient lines.
// A recipe may exist before being attached to a product; at most one recipe
// links to any given product.
type Recipe struct {
	shared.TenantAggregateRoot
	ProductID *uuid.UUID      `gorm:"type:uuid;index"`
	Name      string          `gorm:"type:varchar(200);not null"`
	Yield     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:1"`
	YieldUnit string          `gorm:"type:varchar(20);not null"`
	Notes     string          `gorm:"type:text"`
	Items     []RecipeItem    `gorm:"foreignKey:RecipeID"`
}

// TableName returns the table name for GORM
func (Recipe) TableName() string {
	return "recipes"
}

// RecipeItem is one ingredient line of a recipe
type RecipeItem struct {
	shared.BaseEntity
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	RecipeID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	IngredientID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (RecipeItem) TableName() string {
	return "recipe_items"
}

// NewRecipe creates a new recipe without items
func NewRecipe(tenantID uuid.UUID, name string, yield decimal.Decimal, yieldUnit string) (*Recipe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Recipe name cannot be empty")
	}
	if strings.TrimSpace(yieldUnit) == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Recipe yield unit cannot be empty")
	}
	if !yield.IsPositive() {
		yield = decimal.NewFromInt(1)
	}
	return &Recipe{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Yield:               yield,
		YieldUnit:           yieldUnit,
	}, nil
}

// AddItem appends an ingredient line to the recipe
func (r *Recipe) AddItem(ingredientID uuid.UUID, quantity decimal.Decimal) (*RecipeItem, error) {
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Recipe item quantity must be positive")
	}
	item := RecipeItem{
		BaseEntity:   shared.NewBaseEntity(),
		TenantID:     r.TenantID,
		RecipeID:     r.ID,
		IngredientID: ingredientID,
		Quantity:     quantity,
	}
	r.Items = append(r.Items, item)
	r.UpdatedAt = time.Now()
	return &r.Items[len(r.Items)-1], nil
}

// LinkProduct attaches the recipe to a product. A recipe can only ever be
// attached to one product.
func (r *Recipe) LinkProduct(productID uuid.UUID) error {
	if r.ProductID != nil {
		return shared.NewDomainError("INVARIANT_VIOLATION", "Recipe is already linked to a product")
	}
	r.ProductID = &productID
	r.UpdatedAt = time.Now()
	return nil
}

// UnlinkProduct detaches the recipe from its product
func (r *Recipe) UnlinkProduct() {
	r.ProductID = nil
	r.UpdatedAt = time.Now()
}

// EffectiveYield returns the yield used for unit-cost division.
// Non-positive yields divide as 1 so cost derivation never divides by zero.
func (r *Recipe) EffectiveYield() decimal.Decimal {
	if r.Yield.IsPositive() {
		return r.Yield
	}
	return decimal.NewFromInt(1)
}
