package identity

import (
	"context"
	"strings"
	"time"

	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TenantStatus represents the lifecycle status of a tenant account
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
)

// Tenant is an isolated business account and the root of data partitioning.
// It is created once per signup and never merged or split. It is the only
// aggregate without a tenant key of its own.
type Tenant struct {
	shared.BaseAggregateRoot
	Name   string       `gorm:"type:varchar(200);not null"`
	Plan   string       `gorm:"type:varchar(50);not null;default:'free'"`
	Status TenantStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Tenant) TableName() string {
	return "tenants"
}

// NewTenant creates a new tenant account on the given plan
func NewTenant(name, plan string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Tenant name cannot be empty")
	}
	if plan == "" {
		plan = "free"
	}
	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Plan:              plan,
		Status:            TenantStatusActive,
	}, nil
}

// ChangePlan switches the tenant to a different plan
func (t *Tenant) ChangePlan(plan string) error {
	if strings.TrimSpace(plan) == "" {
		return shared.NewDomainError("VALIDATION_FAILED", "Plan cannot be empty")
	}
	t.Plan = plan
	t.UpdatedAt = time.Now()
	return nil
}

// Suspend marks the tenant as suspended
func (t *Tenant) Suspend() {
	t.Status = TenantStatusSuspended
	t.UpdatedAt = time.Now()
}

// Activate marks the tenant as active
func (t *Tenant) Activate() {
	t.Status = TenantStatusActive
	t.UpdatedAt = time.Now()
}

// IsActive reports whether the tenant may be bound for data access
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// TenantRepository provides access to tenant accounts. It is the only
// repository that is not tenant-bound; it is used by signup and by the
// upstream identity layer, never by tenant-scoped request handling.
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	Save(ctx context.Context, tenant *Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
