package crm

import (
	"time"

	"github.com/craftbase/backend/internal/domain/crm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateContactRequest represents a request to create a contact
type CreateContactRequest struct {
	Name  string           `json:"name" binding:"required,min=1,max=200"`
	Phone string           `json:"phone" binding:"max=50"`
	Email string           `json:"email" binding:"omitempty,email,max=200"`
	Tags  string           `json:"tags"`
	Stage string           `json:"stage" binding:"omitempty,oneof=lead contacted negotiating customer lost"`
	Value *decimal.Decimal `json:"value"`
	Notes string           `json:"notes"`
}

// UpdateContactRequest represents a partial update of a contact
type UpdateContactRequest struct {
	Name  *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Phone *string          `json:"phone" binding:"omitempty,max=50"`
	Email *string          `json:"email" binding:"omitempty,email,max=200"`
	Tags  *string          `json:"tags"`
	Stage *string          `json:"stage" binding:"omitempty,oneof=lead contacted negotiating customer lost"`
	Value *decimal.Decimal `json:"value"`
	Notes *string          `json:"notes"`
}

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Email     string          `json:"email"`
	Tags      []string        `json:"tags"`
	Stage     string          `json:"stage"`
	Value     decimal.Decimal `json:"value"`
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToContactResponse maps a domain contact to its response form
func ToContactResponse(c *crm.Contact) ContactResponse {
	tags := c.TagList()
	if tags == nil {
		tags = []string{}
	}
	return ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Tags:      tags,
		Stage:     string(c.Stage),
		Value:     c.Value,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ContactConversationResponse is a contact enriched with its most recent
// message and unread count, derived on demand.
type ContactConversationResponse struct {
	ContactResponse
	LastMessage *MessageResponse `json:"last_message,omitempty"`
	UnreadCount int64            `json:"unread_count"`
}

// RecordMessageRequest records a message on a contact's conversation
type RecordMessageRequest struct {
	Direction string `json:"direction" binding:"required,oneof=in out"`
	Content   string `json:"content" binding:"required"`
}

// UpdateMessageStatusRequest advances a message's delivery status
type UpdateMessageStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending sent delivered read"`
}

// MessageResponse represents a message in API responses
type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	ContactID uuid.UUID `json:"contact_id"`
	Direction string    `json:"direction"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	SentAt    time.Time `json:"sent_at"`
}

// ToMessageResponse maps a domain message to its response form
func ToMessageResponse(m *crm.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		ContactID: m.ContactID,
		Direction: string(m.Direction),
		Content:   m.Content,
		Status:    string(m.Status),
		SentAt:    m.SentAt,
	}
}
