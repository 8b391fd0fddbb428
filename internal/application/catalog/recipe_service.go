package catalog

import (
	"context"

	"github.com/craftbase/backend/internal/domain/catalog"
	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/craftbase/backend/internal/domain/tenant"
	"github.com/craftbase/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RecipeService handles recipe-related business operations
type RecipeService struct {
	factory tenant.Factory
}

// NewRecipeService creates a new RecipeService
func NewRecipeService(factory tenant.Factory) *RecipeService {
	return &RecipeService{factory: factory}
}

// Create creates a recipe with its ingredient lines. Every referenced
// ingredient must exist in the bound tenant.
func (s *RecipeService) Create(ctx context.Context, tenantID uuid.UUID, req CreateRecipeRequest) (*RecipeResponse, error) {
	var response *RecipeResponse
	err := s.factory.Transaction(ctx, tenantID, func(repos *tenant.Repositories) error {
		if err := validateIngredientRefs(ctx, repos, itemIngredientIDs(req.Items)); err != nil {
			return err
		}

		recipe, err := catalog.NewRecipe(tenantID, req.Name, req.Yield, req.YieldUnit)
		if err != nil {
			return err
		}
		recipe.Notes = req.Notes
		for _, item := range req.Items {
			if _, err := recipe.AddItem(item.IngredientID, item.Quantity); err != nil {
				return err
			}
		}

		if err := repos.Recipes.Save(ctx, recipe); err != nil {
			return err
		}

		ingredients, err := ingredientLookup(ctx, repos, recipe)
		if err != nil {
			return err
		}
		resp := ToRecipeResponse(recipe, ingredients)
		response = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GetByID retrieves a recipe with costs derived from current ingredient prices
func (s *RecipeService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*RecipeResponse, error) {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return nil, err
	}

	recipe, err := repos.Recipes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ingredients, err := ingredientLookup(ctx, repos, recipe)
	if err != nil {
		return nil, err
	}

	response := ToRecipeResponse(recipe, ingredients)
	return &response, nil
}

// List retrieves a paginated list of recipes with derived costs
func (s *RecipeService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[RecipeResponse], error) {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return nil, err
	}

	recipes, err := repos.Recipes.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := repos.Recipes.Count(ctx)
	if err != nil {
		return nil, err
	}

	recipePtrs := make([]*catalog.Recipe, len(recipes))
	for i := range recipes {
		recipePtrs[i] = &recipes[i]
	}
	ingredients, err := ingredientLookup(ctx, repos, recipePtrs...)
	if err != nil {
		return nil, err
	}

	items := make([]RecipeResponse, len(recipes))
	for i := range recipes {
		items[i] = ToRecipeResponse(&recipes[i], ingredients)
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update applies a partial update. A non-nil item set replaces the
// recipe's lines after reference validation, and the cost caches of
// products consuming this recipe are recomputed in the same transaction.
func (s *RecipeService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateRecipeRequest) (*RecipeResponse, error) {
	var response *RecipeResponse
	err := s.factory.Transaction(ctx, tenantID, func(repos *tenant.Repositories) error {
		recipe, err := repos.Recipes.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			recipe.Name = *req.Name
		}
		if req.Yield != nil {
			yield := *req.Yield
			if !yield.IsPositive() {
				yield = decimal.NewFromInt(1)
			}
			recipe.Yield = yield
		}
		if req.YieldUnit != nil {
			recipe.YieldUnit = *req.YieldUnit
		}
		if req.Notes != nil {
			recipe.Notes = *req.Notes
		}

		itemsReplaced := false
		if req.Items != nil {
			if err := validateIngredientRefs(ctx, repos, itemIngredientIDs(*req.Items)); err != nil {
				return err
			}
			newItems := make([]catalog.RecipeItem, 0, len(*req.Items))
			for _, item := range *req.Items {
				if !item.Quantity.IsPositive() {
					return shared.NewDomainError("VALIDATION_FAILED", "Recipe item quantity must be positive")
				}
				newItems = append(newItems, catalog.RecipeItem{
					BaseEntity:   shared.NewBaseEntity(),
					TenantID:     tenantID,
					RecipeID:     recipe.ID,
					IngredientID: item.IngredientID,
					Quantity:     item.Quantity,
				})
			}
			if err := repos.Recipes.ReplaceItems(ctx, recipe.ID, newItems); err != nil {
				return err
			}
			recipe.Items = newItems
			itemsReplaced = true
		}
		recipe.Touch()

		if err := repos.Recipes.Save(ctx, recipe); err != nil {
			return err
		}

		if itemsReplaced || req.Yield != nil {
			components, err := repos.Components.FindRecipeComponentsByRecipe(ctx, recipe.ID)
			if err != nil {
				return err
			}
			affected := make(map[uuid.UUID]struct{}, len(components))
			for _, c := range components {
				affected[c.ProductID] = struct{}{}
			}
			if err := refreshProductCosts(ctx, repos, affected); err != nil {
				return err
			}
		}

		ingredients, err := ingredientLookup(ctx, repos, recipe)
		if err != nil {
			return err
		}
		resp := ToRecipeResponse(recipe, ingredients)
		response = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// Delete removes a recipe and cascades: its lines and the component rows
// of products consuming it are deleted, and those products' cost caches
// are recomputed, all in one transaction.
func (s *RecipeService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.factory.Transaction(ctx, tenantID, func(repos *tenant.Repositories) error {
		components, err := repos.Components.FindRecipeComponentsByRecipe(ctx, id)
		if err != nil {
			return err
		}
		affected := make(map[uuid.UUID]struct{}, len(components))
		for _, c := range components {
			affected[c.ProductID] = struct{}{}
		}

		if err := repos.Components.DeleteRecipeComponentsByRecipe(ctx, id); err != nil {
			return err
		}
		if err := repos.Recipes.Delete(ctx, id); err != nil {
			return err
		}

		if err := refreshProductCosts(ctx, repos, affected); err != nil {
			return err
		}

		logger.L(ctx).Info("recipe deleted",
			zap.String("recipe_id", id.String()),
			zap.Int("affected_products", len(affected)),
		)
		return nil
	})
}

func itemIngredientIDs(items []RecipeItemRequest) []uuid.UUID {
	idSet := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if _, ok := idSet[item.IngredientID]; ok {
			continue
		}
		idSet[item.IngredientID] = struct{}{}
		ids = append(ids, item.IngredientID)
	}
	return ids
}

// validateIngredientRefs fails with REFERENCE_NOT_FOUND when any id is not
// an ingredient of the bound tenant
func validateIngredientRefs(ctx context.Context, repos *tenant.Repositories, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := repos.Ingredients.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return shared.ErrReferenceNotFound
	}
	return nil
}
