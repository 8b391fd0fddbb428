package handler

import (
	apptrade "github.com/craftbase/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	service *apptrade.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(service *apptrade.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.PUT("/:id", h.Update)
		orders.DELETE("/:id", h.Delete)
	}
	rg.GET("/contacts/:id/orders", h.ListByContact)
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	var req apptrade.CreateOrderRequest
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

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	filter := listFilter(c)
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if isPaid := c.Query("is_paid"); isPaid != "" {
		filter.Filters["is_paid"] = isPaid == "true"
	}

	result, err := h.service.List(c.Request.Context(), tid, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order id")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), tid, id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Update handles PUT /orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order id")
		return
	}
	var req apptrade.UpdateOrderRequest
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

// Delete handles DELETE /orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), tid, id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// ListByContact handles GET /contacts/:id/orders
func (h *OrderHandler) ListByContact(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	contactID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid contact id")
		return
	}

	orders, err := h.service.ListByContact(c.Request.Context(), tid, contactID, listFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, orders)
}
