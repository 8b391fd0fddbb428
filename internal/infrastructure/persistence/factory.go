package persistence

import (
	"context"

	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/craftbase/backend/internal/domain/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTenantFactory builds tenant-bound repository sets over a GORM
// connection. Bound sets built by Bind share the connection pool; sets
// built inside Transaction share one transaction.
type GormTenantFactory struct {
	db *gorm.DB
}

// NewGormTenantFactory creates a new GormTenantFactory
func NewGormTenantFactory(db *gorm.DB) *GormTenantFactory {
	return &GormTenantFactory{db: db}
}

// Bind returns a repository set scoped to the tenant
func (f *GormTenantFactory) Bind(tenantID uuid.UUID) (*tenant.Repositories, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrTenantRequired
	}
	return bindRepositories(f.db, tenantID), nil
}

// Transaction runs fn against a repository set bound to the tenant inside
// a single database transaction
func (f *GormTenantFactory) Transaction(ctx context.Context, tenantID uuid.UUID, fn func(repos *tenant.Repositories) error) error {
	if tenantID == uuid.Nil {
		return shared.ErrTenantRequired
	}
	return f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(bindRepositories(tx, tenantID))
	})
}

func bindRepositories(db *gorm.DB, tenantID uuid.UUID) *tenant.Repositories {
	return &tenant.Repositories{
		Ingredients: NewGormIngredientRepository(db, tenantID),
		Recipes:     NewGormRecipeRepository(db, tenantID),
		Products:    NewGormProductRepository(db, tenantID),
		Components:  NewGormComponentRepository(db, tenantID),
		Contacts:    NewGormContactRepository(db, tenantID),
		Messages:    NewGormMessageRepository(db, tenantID),
		Orders:      NewGormOrderRepository(db, tenantID),
	}
}

// Ensure GormTenantFactory implements Factory
var _ tenant.Factory = (*GormTenantFactory)(nil)
