package handler

import (
	appcatalog "github.com/craftbase/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// IngredientHandler handles ingredient endpoints
type IngredientHandler struct {
	BaseHandler
	service *appcatalog.IngredientService
}

// NewIngredientHandler creates a new IngredientHandler
func NewIngredientHandler(service *appcatalog.IngredientService) *IngredientHandler {
	return &IngredientHandler{service: service}
}

// RegisterRoutes registers ingredient routes
func (h *IngredientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ingredients := rg.Group("/ingredients")
	{
		ingredients.POST("", h.Create)
		ingredients.GET("", h.List)
		ingredients.GET("/:id", h.Get)
		ingredients.PUT("/:id", h.Update)
		ingredients.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /ingredients
func (h *IngredientHandler) Create(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	var req appcatalog.CreateIngredientRequest
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

// List handles GET /ingredients
func (h *IngredientHandler) List(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	filter := listFilter(c)
	if kind := c.Query("kind"); kind != "" {
		filter.Filters["kind"] = kind
	}

	result, err := h.service.List(c.Request.Context(), tid, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get handles GET /ingredients/:id
func (h *IngredientHandler) Get(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid ingredient id")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), tid, id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Update handles PUT /ingredients/:id
func (h *IngredientHandler) Update(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid ingredient id")
		return
	}
	var req appcatalog.UpdateIngredientRequest
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

// Delete handles DELETE /ingredients/:id
func (h *IngredientHandler) Delete(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid ingredient id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), tid, id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
