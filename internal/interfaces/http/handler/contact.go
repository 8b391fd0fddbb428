package handler

import (
	appcrm "github.com/craftbase/backend/internal/application/crm"
	"github.com/gin-gonic/gin"
)

// ContactHandler handles CRM contact and conversation endpoints
type ContactHandler struct {
	BaseHandler
	contacts *appcrm.ContactService
	messages *appcrm.MessageService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contacts *appcrm.ContactService, messages *appcrm.MessageService) *ContactHandler {
	return &ContactHandler{
		contacts: contacts,
		messages: messages,
	}
}

// RegisterRoutes registers contact and conversation routes
func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contacts := rg.Group("/contacts")
	{
		contacts.POST("", h.Create)
		contacts.GET("", h.List)
		contacts.GET("/:id", h.Get)
		contacts.PUT("/:id", h.Update)
		contacts.DELETE("/:id", h.Delete)

		contacts.GET("/:id/messages", h.ListMessages)
		contacts.POST("/:id/messages", h.RecordMessage)
		contacts.POST("/:id/messages/read", h.MarkConversationRead)
	}
}

// Create handles POST /contacts
func (h *ContactHandler) Create(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	var req appcrm.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.contacts.Create(c.Request.Context(), tid, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /contacts. With with_messages=true each entry carries
// its latest message and unread count.
func (h *ContactHandler) List(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	filter := listFilter(c)
	if stage := c.Query("stage"); stage != "" {
		filter.Filters["stage"] = stage
	}

	if c.Query("with_messages") == "true" {
		result, err := h.contacts.ListWithLastMessage(c.Request.Context(), tid, filter)
		if err != nil {
			h.Error(c, err)
			return
		}
		h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
		return
	}

	result, err := h.contacts.List(c.Request.Context(), tid, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get handles GET /contacts/:id
func (h *ContactHandler) Get(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid contact id")
		return
	}

	resp, err := h.contacts.GetByID(c.Request.Context(), tid, id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Update handles PUT /contacts/:id
func (h *ContactHandler) Update(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid contact id")
		return
	}
	var req appcrm.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.contacts.Update(c.Request.Context(), tid, id, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /contacts/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid contact id")
		return
	}

	if err := h.contacts.Delete(c.Request.Context(), tid, id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// ListMessages handles GET /contacts/:id/messages
func (h *ContactHandler) ListMessages(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid contact id")
		return
	}

	messages, err := h.messages.ListByContact(c.Request.Context(), tid, id, listFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, messages)
}

// RecordMessage handles POST /contacts/:id/messages
func (h *ContactHandler) RecordMessage(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid contact id")
		return
	}
	var req appcrm.RecordMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.messages.Record(c.Request.Context(), tid, id, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

// MarkConversationRead handles POST /contacts/:id/messages/read
func (h *ContactHandler) MarkConversationRead(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant credential required")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid contact id")
		return
	}

	if err := h.messages.MarkConversationRead(c.Request.Context(), tid, id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
