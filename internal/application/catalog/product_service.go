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

// ProductService handles product-related business operations
type ProductService struct {
	factory tenant.Factory
}

// NewProductService creates a new ProductService
func NewProductService(factory tenant.Factory) *ProductService {
	return &ProductService{factory: factory}
}

// Create creates a new product with an empty component set
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(tenantID, req.Name, req.Unit)
	if err != nil {
		return nil, err
	}
	product.Category = req.Category
	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}

	if err := repos.Products.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ProductResponse, error) {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return nil, err
	}

	product, err := repos.Products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves a paginated list of products
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return nil, err
	}

	products, err := repos.Products.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := repos.Products.Count(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, len(products))
	for i := range products {
		items[i] = ToProductResponse(&products[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update applies a partial update to a product. The cached cost is not a
// writable field here; it only moves through the component-set path.
func (s *ProductService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return nil, err
	}

	product, err := repos.Products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := product.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}
	if req.Active != nil {
		product.Active = *req.Active
	}
	product.Touch()

	if err := repos.Products.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// SetComponents replaces the product's component set. Every referenced
// recipe and packaging ingredient must exist in the bound tenant, and
// packaging components must reference packaging-kind ingredients. The new
// cost cache is computed in the same transaction.
func (s *ProductService) SetComponents(ctx context.Context, tenantID, productID uuid.UUID, req SetComponentsRequest) (*ProductComponentsResponse, error) {
	var response *ProductComponentsResponse
	err := s.factory.Transaction(ctx, tenantID, func(repos *tenant.Repositories) error {
		if _, err := repos.Products.FindByID(ctx, productID); err != nil {
			return err
		}

		recipeIDs := make([]uuid.UUID, 0, len(req.Recipes))
		seenRecipes := make(map[uuid.UUID]struct{}, len(req.Recipes))
		for _, c := range req.Recipes {
			if _, dup := seenRecipes[c.RecipeID]; dup {
				return shared.NewDomainError("VALIDATION_FAILED", "Component set lists the same recipe twice")
			}
			seenRecipes[c.RecipeID] = struct{}{}
			recipeIDs = append(recipeIDs, c.RecipeID)
		}
		recipes, err := repos.Recipes.FindByIDs(ctx, recipeIDs)
		if err != nil {
			return err
		}
		if len(recipes) != len(recipeIDs) {
			return shared.ErrReferenceNotFound
		}

		ingredientIDs := make([]uuid.UUID, 0, len(req.Packaging))
		seenIngredients := make(map[uuid.UUID]struct{}, len(req.Packaging))
		for _, c := range req.Packaging {
			if _, dup := seenIngredients[c.IngredientID]; dup {
				return shared.NewDomainError("VALIDATION_FAILED", "Component set lists the same packaging ingredient twice")
			}
			seenIngredients[c.IngredientID] = struct{}{}
			ingredientIDs = append(ingredientIDs, c.IngredientID)
		}
		packagingIngredients, err := repos.Ingredients.FindByIDs(ctx, ingredientIDs)
		if err != nil {
			return err
		}
		if len(packagingIngredients) != len(ingredientIDs) {
			return shared.ErrReferenceNotFound
		}
		for i := range packagingIngredients {
			if packagingIngredients[i].Kind != catalog.IngredientKindPackaging {
				return shared.NewDomainError("INVARIANT_VIOLATION", "Packaging components must reference packaging-kind ingredients")
			}
		}

		recipeComponents := make([]catalog.ProductRecipeComponent, 0, len(req.Recipes))
		for _, c := range req.Recipes {
			component, err := catalog.NewProductRecipeComponent(tenantID, productID, c.RecipeID, c.Quantity)
			if err != nil {
				return err
			}
			recipeComponents = append(recipeComponents, *component)
		}
		packagingComponents := make([]catalog.ProductPackagingComponent, 0, len(req.Packaging))
		for _, c := range req.Packaging {
			component, err := catalog.NewProductPackagingComponent(tenantID, productID, c.IngredientID, c.Quantity)
			if err != nil {
				return err
			}
			packagingComponents = append(packagingComponents, *component)
		}

		if err := repos.Components.ReplaceForProduct(ctx, productID, recipeComponents, packagingComponents); err != nil {
			return err
		}
		if err := refreshProductCost(ctx, repos, productID); err != nil {
			return err
		}

		resp, err := s.buildComponentsResponse(ctx, repos, productID)
		if err != nil {
			return err
		}
		response = resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GetComponents returns the product's component set and cached cost
func (s *ProductService) GetComponents(ctx context.Context, tenantID, productID uuid.UUID) (*ProductComponentsResponse, error) {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return nil, err
	}
	if _, err := repos.Products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.buildComponentsResponse(ctx, repos, productID)
}

// CreateFromRecipe creates a product pre-wired to an existing unlinked
// recipe: the recipe is linked, a single recipe component is written, and
// the cost cache is seeded, all in one transaction.
func (s *ProductService) CreateFromRecipe(ctx context.Context, tenantID, recipeID uuid.UUID, req CreateFromRecipeRequest) (*ProductResponse, error) {
	var response *ProductResponse
	err := s.factory.Transaction(ctx, tenantID, func(repos *tenant.Repositories) error {
		recipe, err := repos.Recipes.FindByID(ctx, recipeID)
		if err != nil {
			if err == shared.ErrNotFound {
				return shared.ErrReferenceNotFound
			}
			return err
		}

		name := req.Name
		if name == "" {
			name = recipe.Name
		}
		product, err := catalog.NewProduct(tenantID, name, recipe.YieldUnit)
		if err != nil {
			return err
		}
		product.Category = req.Category
		if req.Price != nil {
			if err := product.SetPrice(*req.Price); err != nil {
				return err
			}
		}
		if err := repos.Products.Save(ctx, product); err != nil {
			return err
		}

		if err := recipe.LinkProduct(product.ID); err != nil {
			return err
		}
		if err := repos.Recipes.Save(ctx, recipe); err != nil {
			return err
		}

		quantity := decimal.NewFromInt(1)
		if req.Quantity != nil && req.Quantity.IsPositive() {
			quantity = *req.Quantity
		}
		component, err := catalog.NewProductRecipeComponent(tenantID, product.ID, recipe.ID, quantity)
		if err != nil {
			return err
		}
		if err := repos.Components.ReplaceForProduct(ctx, product.ID, []catalog.ProductRecipeComponent{*component}, nil); err != nil {
			return err
		}
		if err := refreshProductCost(ctx, repos, product.ID); err != nil {
			return err
		}

		product, err = repos.Products.FindByID(ctx, product.ID)
		if err != nil {
			return err
		}
		resp := ToProductResponse(product)
		response = &resp

		logger.L(ctx).Info("product created from recipe",
			zap.String("product_id", product.ID.String()),
			zap.String("recipe_id", recipe.ID.String()),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// AdjustStock applies a signed stock delta to a product
func (s *ProductService) AdjustStock(ctx context.Context, tenantID, id uuid.UUID, req AdjustStockRequest) (*ProductResponse, error) {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return nil, err
	}

	if err := repos.Products.AdjustStock(ctx, id, req.Delta); err != nil {
		return nil, err
	}
	product, err := repos.Products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("product stock adjusted",
		zap.String("product_id", id.String()),
		zap.String("delta", req.Delta.String()),
		zap.String("reason", req.Reason),
	)

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product and cascades: its component rows are deleted
// and a recipe linked to it is unlinked, all in one transaction. Orders
// keep their item rows; history is immune to catalog deletions.
func (s *ProductService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.factory.Transaction(ctx, tenantID, func(repos *tenant.Repositories) error {
		if err := repos.Products.Delete(ctx, id); err != nil {
			return err
		}
		if err := repos.Components.DeleteByProduct(ctx, id); err != nil {
			return err
		}

		recipe, err := repos.Recipes.FindByProductID(ctx, id)
		if err != nil {
			if err == shared.ErrNotFound {
				return nil
			}
			return err
		}
		recipe.UnlinkProduct()
		return repos.Recipes.Save(ctx, recipe)
	})
}

func (s *ProductService) buildComponentsResponse(ctx context.Context, repos *tenant.Repositories, productID uuid.UUID) (*ProductComponentsResponse, error) {
	recipeComponents, packagingComponents, err := repos.Components.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	recipeIDs := make([]uuid.UUID, 0, len(recipeComponents))
	for _, c := range recipeComponents {
		recipeIDs = append(recipeIDs, c.RecipeID)
	}
	recipes, err := repos.Recipes.FindByIDs(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}
	recipeNames := make(map[uuid.UUID]string, len(recipes))
	for i := range recipes {
		recipeNames[recipes[i].ID] = recipes[i].Name
	}

	ingredientIDs := make([]uuid.UUID, 0, len(packagingComponents))
	for _, c := range packagingComponents {
		ingredientIDs = append(ingredientIDs, c.IngredientID)
	}
	ingredients, err := repos.Ingredients.FindByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, err
	}
	ingredientNames := make(map[uuid.UUID]string, len(ingredients))
	for i := range ingredients {
		ingredientNames[ingredients[i].ID] = ingredients[i].Name
	}

	product, err := repos.Products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	resp := &ProductComponentsResponse{
		ProductID: productID,
		Recipes:   make([]RecipeComponentResponse, len(recipeComponents)),
		Packaging: make([]PackagingComponentResponse, len(packagingComponents)),
		Cost:      product.Cost,
	}
	for i, c := range recipeComponents {
		resp.Recipes[i] = RecipeComponentResponse{
			RecipeID:   c.RecipeID,
			RecipeName: recipeNames[c.RecipeID],
			Quantity:   c.Quantity,
		}
	}
	for i, c := range packagingComponents {
		resp.Packaging[i] = PackagingComponentResponse{
			IngredientID:   c.IngredientID,
			IngredientName: ingredientNames[c.IngredientID],
			Quantity:       c.Quantity,
		}
	}
	return resp, nil
}
