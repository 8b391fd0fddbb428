package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cost cascade: ingredient cost per unit -> recipe cost per unit -> product
// cost. Recipe costs are derived fresh on every read so they can never drift
// from current ingredient prices; only the product cost is cached, and only
// the component-set mutation point is allowed to write that cache.

// RecipeTotalCost sums quantity times ingredient cost over the recipe's
// lines. Lines whose ingredient is missing from the lookup are skipped, as
// are packaging-kind ingredients, which are costed through product
// packaging components instead.
func RecipeTotalCost(recipe *Recipe, ingredients map[uuid.UUID]*Ingredient) decimal.Decimal {
	total := decimal.Zero
	for _, item := range recipe.Items {
		ing, ok := ingredients[item.IngredientID]
		if !ok || ing.Kind == IngredientKindPackaging {
			continue
		}
		total = total.Add(item.Quantity.Mul(ing.CostPerUnit))
	}
	return total
}

// RecipeUnitCost divides the recipe's total cost by its effective yield.
func RecipeUnitCost(recipe *Recipe, ingredients map[uuid.UUID]*Ingredient) decimal.Decimal {
	return RecipeTotalCost(recipe, ingredients).Div(recipe.EffectiveYield())
}

// ProductCost computes the cascade sum for a product's component set:
// recipe components at their recipe's unit cost plus packaging components
// at the ingredient's cost per unit. Both lookups must cover every
// referenced id; validation happens before this is called.
func ProductCost(
	recipeComponents []ProductRecipeComponent,
	recipeUnitCosts map[uuid.UUID]decimal.Decimal,
	packagingComponents []ProductPackagingComponent,
	ingredients map[uuid.UUID]*Ingredient,
) decimal.Decimal {
	total := decimal.Zero
	for _, c := range recipeComponents {
		total = total.Add(c.Quantity.Mul(recipeUnitCosts[c.RecipeID]))
	}
	for _, c := range packagingComponents {
		if ing, ok := ingredients[c.IngredientID]; ok {
			total = total.Add(c.Quantity.Mul(ing.CostPerUnit))
		}
	}
	return total
}

// RoundMoney normalizes a derived cost for persistence: two fractional
// digits, half-up.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
