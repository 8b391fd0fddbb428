package identity

import (
	"time"

	"github.com/craftbase/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// SignupRequest creates a tenant account
type SignupRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Email string `json:"email" binding:"omitempty,email,max=200"`
	Plan  string `json:"plan" binding:"omitempty,oneof=free starter pro"`
}

// UpdateTenantRequest represents a partial update of a tenant account
type UpdateTenantRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=200"`
	Plan *string `json:"plan" binding:"omitempty,oneof=free starter pro"`
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Plan      string    `json:"plan"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// SignupResponse is the result of a signup: the tenant plus an access token
// bound to it
type SignupResponse struct {
	Tenant    TenantResponse `json:"tenant"`
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// ToTenantResponse maps a domain tenant to its response form
func ToTenantResponse(t *identity.Tenant) TenantResponse {
	return TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Plan:      t.Plan,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
	}
}
