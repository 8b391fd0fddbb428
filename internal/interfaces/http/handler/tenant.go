package handler

import (
	appidentity "github.com/craftbase/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// TenantHandler handles tenant account endpoints
type TenantHandler struct {
	BaseHandler
	service *appidentity.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(service *appidentity.TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

// RegisterPublicRoutes registers routes that require no tenant credential
func (h *TenantHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/signup", h.Signup)
}

// RegisterRoutes registers authenticated tenant routes
func (h *TenantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tenants := rg.Group("/tenant")
	{
		tenants.GET("", h.Get)
		tenants.PUT("", h.Update)
	}
}

// Signup handles POST /signup
func (h *TenantHandler) Signup(c *gin.Context) {
	var req appidentity.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /tenant, returning the authenticated tenant
func (h *TenantHandler) Get(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), tid)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Update handles PUT /tenant
func (h *TenantHandler) Update(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	var req appidentity.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), tid, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}
