// Package tenant defines the bound repository set and the factory that
// produces it. Binding a tenant is the only way application code may touch
// tenant data: every repository in the set is constructed scoped to the
// bound tenant, so an unscoped query is not expressible.
package tenant

import (
	"context"

	"github.com/craftbase/backend/internal/domain/catalog"
	"github.com/craftbase/backend/internal/domain/crm"
	"github.com/craftbase/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// Repositories is the per-tenant repository set. All members share the
// same bound tenant; inside Factory.Transaction they additionally share
// one database transaction.
type Repositories struct {
	Ingredients catalog.IngredientRepository
	Recipes     catalog.RecipeRepository
	Products    catalog.ProductRepository
	Components  catalog.ComponentRepository
	Contacts    crm.ContactRepository
	Messages    crm.MessageRepository
	Orders      trade.OrderRepository
}

// Factory binds tenants to repository sets
type Factory interface {
	// Bind returns a repository set scoped to the tenant. It fails when
	// the tenant id is nil; it performs no existence check, which is the
	// upstream identity layer's job.
	Bind(tenantID uuid.UUID) (*Repositories, error)
	// Transaction runs fn against a repository set bound to the tenant
	// inside a single database transaction. A non-nil error from fn
	// rolls back every write made through the set.
	Transaction(ctx context.Context, tenantID uuid.UUID, fn func(repos *Repositories) error) error
}
