package catalog

import (
	"time"

	"github.com/craftbase/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Ingredient DTOs
// =============================================================================

// CreateIngredientRequest represents a request to create a new ingredient
type CreateIngredientRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Kind        string           `json:"kind" binding:"omitempty,oneof=raw packaging"`
	Unit        string           `json:"unit" binding:"required,min=1,max=20"`
	CostPerUnit *decimal.Decimal `json:"cost_per_unit"`
	Stock       *decimal.Decimal `json:"stock"`
	MinStock    *decimal.Decimal `json:"min_stock"`
	Supplier    string           `json:"supplier" binding:"max=200"`
}

// UpdateIngredientRequest represents a partial update of an ingredient
type UpdateIngredientRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Unit        *string          `json:"unit" binding:"omitempty,min=1,max=20"`
	CostPerUnit *decimal.Decimal `json:"cost_per_unit"`
	Stock       *decimal.Decimal `json:"stock"`
	MinStock    *decimal.Decimal `json:"min_stock"`
	Supplier    *string          `json:"supplier" binding:"omitempty,max=200"`
}

// IngredientResponse represents an ingredient in API responses
type IngredientResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Kind         string          `json:"kind"`
	Unit         string          `json:"unit"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
	Stock        decimal.Decimal `json:"stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Supplier     string          `json:"supplier"`
	BelowMinimum bool            `json:"below_minimum"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToIngredientResponse maps a domain ingredient to its response form
func ToIngredientResponse(i *catalog.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:           i.ID,
		Name:         i.Name,
		Kind:         string(i.Kind),
		Unit:         i.Unit,
		CostPerUnit:  i.CostPerUnit,
		Stock:        i.Stock,
		MinStock:     i.MinStock,
		Supplier:     i.Supplier,
		BelowMinimum: i.IsBelowMinimum(),
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// =============================================================================
// Recipe DTOs
// =============================================================================

// RecipeItemRequest is one ingredient line of a create/update recipe request
type RecipeItemRequest struct {
	IngredientID uuid.UUID       `json:"ingredient_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateRecipeRequest represents a request to create a recipe with its lines
type CreateRecipeRequest struct {
	Name      string              `json:"name" binding:"required,min=1,max=200"`
	Yield     decimal.Decimal     `json:"yield"`
	YieldUnit string              `json:"yield_unit" binding:"required,min=1,max=20"`
	Notes     string              `json:"notes"`
	Items     []RecipeItemRequest `json:"items" binding:"dive"`
}

// UpdateRecipeRequest represents a partial update of a recipe. A non-nil
// Items slice replaces the full line set.
type UpdateRecipeRequest struct {
	Name      *string              `json:"name" binding:"omitempty,min=1,max=200"`
	Yield     *decimal.Decimal     `json:"yield"`
	YieldUnit *string              `json:"yield_unit" binding:"omitempty,min=1,max=20"`
	Notes     *string              `json:"notes"`
	Items     *[]RecipeItemRequest `json:"items" binding:"omitempty,dive"`
}

// RecipeItemResponse is one ingredient line in a recipe response
type RecipeItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	IngredientID   uuid.UUID       `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	LineCost       decimal.Decimal `json:"line_cost"`
}

// RecipeResponse represents a recipe in API responses. TotalCost and
// UnitCost are derived from current ingredient prices at read time.
type RecipeResponse struct {
	ID        uuid.UUID            `json:"id"`
	ProductID *uuid.UUID           `json:"product_id,omitempty"`
	Name      string               `json:"name"`
	Yield     decimal.Decimal      `json:"yield"`
	YieldUnit string               `json:"yield_unit"`
	Notes     string               `json:"notes"`
	Items     []RecipeItemResponse `json:"items"`
	TotalCost decimal.Decimal      `json:"total_cost"`
	UnitCost  decimal.Decimal      `json:"unit_cost"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// ToRecipeResponse maps a recipe plus its ingredient lookup to a response
// with freshly derived costs.
func ToRecipeResponse(r *catalog.Recipe, ingredients map[uuid.UUID]*catalog.Ingredient) RecipeResponse {
	items := make([]RecipeItemResponse, len(r.Items))
	for i, item := range r.Items {
		line := RecipeItemResponse{
			ID:           item.ID,
			IngredientID: item.IngredientID,
			Quantity:     item.Quantity,
			LineCost:     decimal.Zero,
		}
		if ing, ok := ingredients[item.IngredientID]; ok {
			line.IngredientName = ing.Name
			if ing.Kind != catalog.IngredientKindPackaging {
				line.LineCost = catalog.RoundMoney(item.Quantity.Mul(ing.CostPerUnit))
			}
		}
		items[i] = line
	}
	return RecipeResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		Name:      r.Name,
		Yield:     r.Yield,
		YieldUnit: r.YieldUnit,
		Notes:     r.Notes,
		Items:     items,
		TotalCost: catalog.RoundMoney(catalog.RecipeTotalCost(r, ingredients)),
		UnitCost:  catalog.RoundMoney(catalog.RecipeUnitCost(r, ingredients)),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// =============================================================================
// Product DTOs
// =============================================================================

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name     string           `json:"name" binding:"required,min=1,max=200"`
	Category string           `json:"category" binding:"max=100"`
	Unit     string           `json:"unit" binding:"required,min=1,max=20"`
	Price    *decimal.Decimal `json:"price"`
	Stock    *decimal.Decimal `json:"stock"`
	MinStock *decimal.Decimal `json:"min_stock"`
}

// UpdateProductRequest represents a partial update of a product
type UpdateProductRequest struct {
	Name     *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Category *string          `json:"category" binding:"omitempty,max=100"`
	Unit     *string          `json:"unit" binding:"omitempty,min=1,max=20"`
	Price    *decimal.Decimal `json:"price"`
	Stock    *decimal.Decimal `json:"stock"`
	MinStock *decimal.Decimal `json:"min_stock"`
	Active   *bool            `json:"active"`
}

// RecipeComponentRequest references a recipe consumed by a product
type RecipeComponentRequest struct {
	RecipeID uuid.UUID       `json:"recipe_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// PackagingComponentRequest references a packaging ingredient consumed by a product
type PackagingComponentRequest struct {
	IngredientID uuid.UUID       `json:"ingredient_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
}

// SetComponentsRequest replaces a product's component set
type SetComponentsRequest struct {
	Recipes   []RecipeComponentRequest    `json:"recipes" binding:"dive"`
	Packaging []PackagingComponentRequest `json:"packaging" binding:"dive"`
}

// CreateFromRecipeRequest creates a product pre-wired to an existing recipe
type CreateFromRecipeRequest struct {
	Name     string           `json:"name" binding:"omitempty,max=200"`
	Category string           `json:"category" binding:"max=100"`
	Price    *decimal.Decimal `json:"price"`
	Quantity *decimal.Decimal `json:"quantity"`
}

// AdjustStockRequest applies a signed stock delta to a product
type AdjustStockRequest struct {
	Delta  decimal.Decimal `json:"delta" binding:"required"`
	Reason string          `json:"reason" binding:"max=200"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	Margin       decimal.Decimal `json:"margin"`
	Stock        decimal.Decimal `json:"stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Active       bool            `json:"active"`
	BelowMinimum bool            `json:"below_minimum"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToProductResponse maps a domain product to its response form
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		Unit:         p.Unit,
		Price:        p.Price,
		Cost:         p.Cost,
		Margin:       p.Margin(),
		Stock:        p.Stock,
		MinStock:     p.MinStock,
		Active:       p.Active,
		BelowMinimum: p.IsBelowMinimum(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// RecipeComponentResponse is a recipe component row in responses
type RecipeComponentResponse struct {
	RecipeID   uuid.UUID       `json:"recipe_id"`
	RecipeName string          `json:"recipe_name,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// PackagingComponentResponse is a packaging component row in responses
type PackagingComponentResponse struct {
	IngredientID   uuid.UUID       `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
}

// ProductComponentsResponse is a product's full component set
type ProductComponentsResponse struct {
	ProductID uuid.UUID                    `json:"product_id"`
	Recipes   []RecipeComponentResponse    `json:"recipes"`
	Packaging []PackagingComponentResponse `json:"packaging"`
	Cost      decimal.Decimal              `json:"cost"`
}
