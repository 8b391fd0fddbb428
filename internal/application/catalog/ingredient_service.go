package catalog

import (
	"context"

	"github.com/craftbase/backend/internal/domain/catalog"
	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/craftbase/backend/internal/domain/tenant"
	"github.com/craftbase/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IngredientService handles ingredient-related business operations
type IngredientService struct {
	factory tenant.Factory
}

// NewIngredientService creates a new IngredientService
func NewIngredientService(factory tenant.Factory) *IngredientService {
	return &IngredientService{factory: factory}
}

// Create creates a new ingredient
func (s *IngredientService) Create(ctx context.Context, tenantID uuid.UUID, req CreateIngredientRequest) (*IngredientResponse, error) {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return nil, err
	}

	ingredient, err := catalog.NewIngredient(tenantID, req.Name, catalog.IngredientKind(req.Kind), req.Unit)
	if err != nil {
		return nil, err
	}
	if req.CostPerUnit != nil {
		if err := ingredient.SetCostPerUnit(*req.CostPerUnit); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil || req.MinStock != nil {
		stock := ingredient.Stock
		minStock := ingredient.MinStock
		if req.Stock != nil {
			stock = *req.Stock
		}
		if req.MinStock != nil {
			minStock = *req.MinStock
		}
		ingredient.SetStockLevels(stock, minStock)
	}
	ingredient.Supplier = req.Supplier

	if err := repos.Ingredients.Save(ctx, ingredient); err != nil {
		return nil, err
	}

	response := ToIngredientResponse(ingredient)
	return &response, nil
}

// GetByID retrieves an ingredient by ID
func (s *IngredientService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*IngredientResponse, error) {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return nil, err
	}

	ingredient, err := repos.Ingredients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToIngredientResponse(ingredient)
	return &response, nil
}

// List retrieves a paginated list of ingredients
func (s *IngredientService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[IngredientResponse], error) {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return nil, err
	}

	ingredients, err := repos.Ingredients.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := repos.Ingredients.Count(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]IngredientResponse, len(ingredients))
	for i := range ingredients {
		items[i] = ToIngredientResponse(&ingredients[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update applies a partial update to an ingredient. A cost change takes
// effect on recipe costs immediately because those are derived at read
// time; cached product costs refresh at the next component-set mutation.
func (s *IngredientService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateIngredientRequest) (*IngredientResponse, error) {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return nil, err
	}

	ingredient, err := repos.Ingredients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := ingredient.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Unit != nil {
		ingredient.Unit = *req.Unit
	}
	if req.CostPerUnit != nil {
		if err := ingredient.SetCostPerUnit(*req.CostPerUnit); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil || req.MinStock != nil {
		stock := ingredient.Stock
		minStock := ingredient.MinStock
		if req.Stock != nil {
			stock = *req.Stock
		}
		if req.MinStock != nil {
			minStock = *req.MinStock
		}
		ingredient.SetStockLevels(stock, minStock)
	}
	if req.Supplier != nil {
		ingredient.Supplier = *req.Supplier
	}

	if err := repos.Ingredients.Save(ctx, ingredient); err != nil {
		return nil, err
	}

	response := ToIngredientResponse(ingredient)
	return &response, nil
}

// Delete removes an ingredient and cascades: its recipe lines and
// packaging component rows are deleted, and every affected product's cost
// cache is recomputed, all in one transaction.
func (s *IngredientService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.factory.Transaction(ctx, tenantID, func(repos *tenant.Repositories) error {
		if _, err := repos.Ingredients.FindByID(ctx, id); err != nil {
			return err
		}

		affected := make(map[uuid.UUID]struct{})

		packaging, err := repos.Components.FindPackagingByIngredient(ctx, id)
		if err != nil {
			return err
		}
		for _, c := range packaging {
			affected[c.ProductID] = struct{}{}
		}

		recipes, err := repos.Recipes.FindByIngredient(ctx, id)
		if err != nil {
			return err
		}
		for i := range recipes {
			components, err := repos.Components.FindRecipeComponentsByRecipe(ctx, recipes[i].ID)
			if err != nil {
				return err
			}
			for _, c := range components {
				affected[c.ProductID] = struct{}{}
			}
		}

		if err := repos.Recipes.RemoveItemsByIngredient(ctx, id); err != nil {
			return err
		}
		if err := repos.Components.DeletePackagingByIngredient(ctx, id); err != nil {
			return err
		}
		if err := repos.Ingredients.Delete(ctx, id); err != nil {
			return err
		}

		if err := refreshProductCosts(ctx, repos, affected); err != nil {
			return err
		}

		logger.L(ctx).Info("ingredient deleted",
			zap.String("ingredient_id", id.String()),
			zap.Int("affected_products", len(affected)),
		)
		return nil
	})
}
