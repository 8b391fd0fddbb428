package handler

import (
	appcatalog "github.com/craftbase/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// RecipeHandler handles recipe endpoints
type RecipeHandler struct {
	BaseHandler
	service *appcatalog.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(service *appcatalog.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: service}
}

// RegisterRoutes registers recipe routes
func (h *RecipeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	recipes := rg.Group("/recipes")
	{
		recipes.POST("", h.Create)
		recipes.GET("", h.List)
		recipes.GET("/:id", h.Get)
		recipes.PUT("/:id", h.Update)
		recipes.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /recipes
func (h *RecipeHandler) Create(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	var req appcatalog.CreateRecipeRequest
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

// List handles GET /recipes
func (h *RecipeHandler) List(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}

	result, err := h.service.List(c.Request.Context(), tid, listFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get handles GET /recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid recipe id")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), tid, id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Update handles PUT /recipes/:id
func (h *RecipeHandler) Update(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid recipe id")
		return
	}
	var req appcatalog.UpdateRecipeRequest
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

// Delete handles DELETE /recipes/:id
func (h *RecipeHandler) Delete(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid recipe id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), tid, id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
