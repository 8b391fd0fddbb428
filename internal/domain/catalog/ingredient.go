package catalog

import (
	"strings"
	"time"

	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IngredientKind distinguishes raw ingredients from packaging material.
// Packaging ingredients never contribute to recipe cost; they are costed
// through product packaging components instead.
type IngredientKind string

const (
	IngredientKindRaw       IngredientKind = "raw"
	IngredientKindPackaging IngredientKind = "packaging"
)

// Valid reports whether the kind is a known value
func (k IngredientKind) Valid() bool {
	return k == IngredientKindRaw || k == IngredientKindPackaging
}

// Ingredient is a purchasable input: raw material consumed by recipes or
// packaging material consumed per unit of finished product.
type Ingredient struct {
	shared.TenantAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null"`
	Kind        IngredientKind  `gorm:"type:varchar(20);not null;default:'raw'"`
	Unit        string          `gorm:"type:varchar(20);not null"`
	CostPerUnit decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Stock       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinStock    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Supplier    string          `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (Ingredient) TableName() string {
	return "ingredients"
}

// NewIngredient creates a new ingredient
func NewIngredient(tenantID uuid.UUID, name string, kind IngredientKind, unit string) (*Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Ingredient name cannot be empty")
	}
	if kind == "" {
		kind = IngredientKindRaw
	}
	if !kind.Valid() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Unknown ingredient kind")
	}
	if strings.TrimSpace(unit) == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Ingredient unit cannot be empty")
	}
	return &Ingredient{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Kind:                kind,
		Unit:                unit,
		CostPerUnit:         decimal.Zero,
		Stock:               decimal.Zero,
		MinStock:            decimal.Zero,
	}, nil
}

// Rename changes the ingredient's display name
func (i *Ingredient) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("VALIDATION_FAILED", "Ingredient name cannot be empty")
	}
	i.Name = name
	i.UpdatedAt = time.Now()
	return nil
}

// SetCostPerUnit updates the purchase cost per base unit
func (i *Ingredient) SetCostPerUnit(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return shared.NewDomainError("VALIDATION_FAILED", "Cost per unit cannot be negative")
	}
	i.CostPerUnit = cost
	i.UpdatedAt = time.Now()
	return nil
}

// SetStockLevels updates current and minimum stock
func (i *Ingredient) SetStockLevels(stock, minStock decimal.Decimal) {
	i.Stock = stock
	i.MinStock = minStock
	i.UpdatedAt = time.Now()
}

// IsBelowMinimum reports whether the stock fell under the alert threshold
func (i *Ingredient) IsBelowMinimum() bool {
	return i.MinStock.IsPositive() && i.Stock.LessThan(i.MinStock)
}
