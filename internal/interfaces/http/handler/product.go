package handler

import (
	appcatalog "github.com/craftbase/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles product endpoints, including the component-set
// mutation that drives the cost cache.
type ProductHandler struct {
	BaseHandler
	service *appcatalog.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(service *appcatalog.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.POST("", h.Create)
		products.GET("", h.List)
		products.GET("/:id", h.Get)
		products.PUT("/:id", h.Update)
		products.DELETE("/:id", h.Delete)
		products.GET("/:id/components", h.GetComponents)
		products.PUT("/:id/components", h.SetComponents)
		products.POST("/:id/stock", h.AdjustStock)
		products.POST("/from-recipe/:recipeId", h.CreateFromRecipe)
	}
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	var req appcatalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), tid, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	filter := listFilter(c)
	if category := c.Query("category"); category != "" {
		filter.Filters["category"] = category
	}
	if active := c.Query("active"); active != "" {
		filter.Filters["active"] = active == "true"
	}

	result, err := h.service.List(c.Request.Context(), tid, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product id")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), tid, id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product id")
		return
	}
	var req appcatalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), tid, id, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), tid, id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// GetComponents handles GET /products/:id/components
func (h *ProductHandler) GetComponents(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product id")
		return
	}

	resp, err := h.service.GetComponents(c.Request.Context(), tid, id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// SetComponents handles PUT /products/:id/components
func (h *ProductHandler) SetComponents(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product id")
		return
	}
	var req appcatalog.SetComponentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.SetComponents(c.Request.Context(), tid, id, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// AdjustStock handles POST /products/:id/stock
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product id")
		return
	}
	var req appcatalog.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.AdjustStock(c.Request.Context(), tid, id, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateFromRecipe handles POST /products/from-recipe/:recipeId
func (h *ProductHandler) CreateFromRecipe(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	recipeID, ok := parseUUIDParam(c, "recipeId")
	if !ok {
		h.BadRequest(c, "Invalid recipe id")
		return
	}
	var req appcatalog.CreateFromRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.CreateFromRecipe(c.Request.Context(), tid, recipeID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}
