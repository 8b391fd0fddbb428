package catalog

import (
	"strings"
	"time"

	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable item. Its Cost field is a cached snapshot of the
// component cost cascade, refreshed synchronously whenever the component
// set changes; it is never recomputed implicitly on read.
type Product struct {
	shared.TenantAggregateRoot
	Name     string          `gorm:"type:varchar(200);not null"`
	Category string          `gorm:"type:varchar(100)"`
	Unit     string          `gorm:"type:varchar(20);not null"`
	Price    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Cost     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Stock    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinStock decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Active   bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product
func NewProduct(tenantID uuid.UUID, name, unit string) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Product name cannot be empty")
	}
	if strings.TrimSpace(unit) == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Product unit cannot be empty")
	}
	return &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Unit:                unit,
		Price:               decimal.Zero,
		Cost:                decimal.Zero,
		Stock:               decimal.Zero,
		MinStock:            decimal.Zero,
		Active:              true,
	}, nil
}

// Rename changes the product's display name
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("VALIDATION_FAILED", "Product name cannot be empty")
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	return nil
}

// SetPrice updates the selling price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("VALIDATION_FAILED", "Price cannot be negative")
	}
	p.Price = price
	p.UpdatedAt = time.Now()
	return nil
}

// SetCost writes the cached component cost snapshot
func (p *Product) SetCost(cost decimal.Decimal) {
	p.Cost = cost
	p.UpdatedAt = time.Now()
}

// Margin returns price minus cached cost
func (p *Product) Margin() decimal.Decimal {
	return p.Price.Sub(p.Cost)
}

// IsBelowMinimum reports whether the stock fell under the alert threshold
func (p *Product) IsBelowMinimum() bool {
	return p.MinStock.IsPositive() && p.Stock.LessThan(p.MinStock)
}
