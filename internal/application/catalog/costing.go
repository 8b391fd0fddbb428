package catalog

import (
	"context"

	"github.com/craftbase/backend/internal/domain/catalog"
	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/craftbase/backend/internal/domain/tenant"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ingredientLookup loads the ingredients referenced by the given recipes
// into an id-keyed map for cost derivation.
func ingredientLookup(ctx context.Context, repos *tenant.Repositories, recipes ...*catalog.Recipe) (map[uuid.UUID]*catalog.Ingredient, error) {
	idSet := make(map[uuid.UUID]struct{})
	for _, r := range recipes {
		for _, item := range r.Items {
			idSet[item.IngredientID] = struct{}{}
		}
	}
	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	ingredients, err := repos.Ingredients.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	lookup := make(map[uuid.UUID]*catalog.Ingredient, len(ingredients))
	for i := range ingredients {
		lookup[ingredients[i].ID] = &ingredients[i]
	}
	return lookup, nil
}

// refreshProductCost recomputes the cost cascade for one product from its
// current component set and writes the cache. It is the only code path
// that touches the product cost snapshot.
func refreshProductCost(ctx context.Context, repos *tenant.Repositories, productID uuid.UUID) error {
	recipeComponents, packagingComponents, err := repos.Components.FindByProduct(ctx, productID)
	if err != nil {
		return err
	}

	recipeIDs := make([]uuid.UUID, 0, len(recipeComponents))
	for _, c := range recipeComponents {
		recipeIDs = append(recipeIDs, c.RecipeID)
	}
	recipes, err := repos.Recipes.FindByIDs(ctx, recipeIDs)
	if err != nil {
		return err
	}

	recipePtrs := make([]*catalog.Recipe, len(recipes))
	for i := range recipes {
		recipePtrs[i] = &recipes[i]
	}
	ingredients, err := ingredientLookup(ctx, repos, recipePtrs...)
	if err != nil {
		return err
	}

	// Packaging component ingredients are not recipe lines; load them too.
	packagingIDs := make([]uuid.UUID, 0, len(packagingComponents))
	for _, c := range packagingComponents {
		if _, ok := ingredients[c.IngredientID]; !ok {
			packagingIDs = append(packagingIDs, c.IngredientID)
		}
	}
	if len(packagingIDs) > 0 {
		extra, err := repos.Ingredients.FindByIDs(ctx, packagingIDs)
		if err != nil {
			return err
		}
		for i := range extra {
			ingredients[extra[i].ID] = &extra[i]
		}
	}

	unitCosts := make(map[uuid.UUID]decimal.Decimal, len(recipes))
	for i := range recipes {
		unitCosts[recipes[i].ID] = catalog.RecipeUnitCost(&recipes[i], ingredients)
	}
	// A component row whose recipe no longer exists means the delete cascade
	// was bypassed; abort rather than cost the reference as zero.
	for _, c := range recipeComponents {
		if _, ok := unitCosts[c.RecipeID]; !ok {
			return shared.ErrReferenceNotFound
		}
	}

	cost := catalog.RoundMoney(catalog.ProductCost(recipeComponents, unitCosts, packagingComponents, ingredients))
	return repos.Products.UpdateCost(ctx, productID, cost)
}

// refreshProductCosts refreshes the cost cache of each product in the set
func refreshProductCosts(ctx context.Context, repos *tenant.Repositories, productIDs map[uuid.UUID]struct{}) error {
	for id := range productIDs {
		if err := refreshProductCost(ctx, repos, id); err != nil {
			return err
		}
	}
	return nil
}
