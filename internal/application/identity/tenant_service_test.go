package identity

import (
	"context"
	"testing"
	"time"

	domidentity "github.com/craftbase/backend/internal/domain/identity"
	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/craftbase/backend/internal/infrastructure/auth"
	"github.com/craftbase/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryTenantRepo keeps tenants in a map for service-level tests
type memoryTenantRepo struct {
	tenants map[uuid.UUID]*domidentity.Tenant
}

func newMemoryTenantRepo() *memoryTenantRepo {
	return &memoryTenantRepo{tenants: make(map[uuid.UUID]*domidentity.Tenant)}
}

func (r *memoryTenantRepo) FindByID(_ context.Context, id uuid.UUID) (*domidentity.Tenant, error) {
	if t, ok := r.tenants[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memoryTenantRepo) Save(_ context.Context, tenant *domidentity.Tenant) error {
	copied := *tenant
	r.tenants[tenant.ID] = &copied
	return nil
}

func (r *memoryTenantRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.tenants[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.tenants, id)
	return nil
}

func (r *memoryTenantRepo) Count(context.Context) (int64, error) {
	return int64(len(r.tenants)), nil
}

func newTenantService(repo domidentity.TenantRepository) (*TenantService, *auth.JWTService) {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret: "test-secret-key-at-least-32-chars",
		TTL:    time.Hour,
		Issuer: "craftbase-test",
	})
	return NewTenantService(repo, jwtService, zap.NewNop()), jwtService
}

func TestTenantService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the account and issues a bound token", func(t *testing.T) {
		repo := newMemoryTenantRepo()
		svc, jwtService := newTenantService(repo)

		resp, err := svc.Signup(ctx, SignupRequest{Name: "Jam Works", Email: "owner@jamworks.test", Plan: "starter"})
		require.NoError(t, err)

		assert.Equal(t, "Jam Works", resp.Tenant.Name)
		assert.Equal(t, "starter", resp.Tenant.Plan)
		assert.Equal(t, "active", resp.Tenant.Status)
		assert.True(t, resp.ExpiresAt.After(time.Now()))

		claims, err := jwtService.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.Tenant.ID.String(), claims.TenantID)
		assert.Equal(t, "owner@jamworks.test", claims.Email)

		saved, err := repo.FindByID(ctx, resp.Tenant.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jam Works", saved.Name)
	})

	t.Run("defaults to the free plan", func(t *testing.T) {
		svc, _ := newTenantService(newMemoryTenantRepo())

		resp, err := svc.Signup(ctx, SignupRequest{Name: "Soap Barn"})
		require.NoError(t, err)
		assert.Equal(t, "free", resp.Tenant.Plan)
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		svc, _ := newTenantService(newMemoryTenantRepo())

		_, err := svc.Signup(ctx, SignupRequest{Name: "   "})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	})
}

func TestTenantService_Update(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryTenantRepo()
	svc, _ := newTenantService(repo)

	signup, err := svc.Signup(ctx, SignupRequest{Name: "Candle Co"})
	require.NoError(t, err)

	t.Run("changes the plan", func(t *testing.T) {
		plan := "pro"
		resp, err := svc.Update(ctx, signup.Tenant.ID, UpdateTenantRequest{Plan: &plan})
		require.NoError(t, err)
		assert.Equal(t, "pro", resp.Plan)
		assert.Equal(t, "Candle Co", resp.Name)
	})

	t.Run("missing tenant reports not found", func(t *testing.T) {
		name := "Nobody"
		_, err := svc.Update(ctx, uuid.New(), UpdateTenantRequest{Name: &name})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestTenantService_SuspendActivate(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryTenantRepo()
	svc, _ := newTenantService(repo)

	signup, err := svc.Signup(ctx, SignupRequest{Name: "Honey House"})
	require.NoError(t, err)

	require.NoError(t, svc.Suspend(ctx, signup.Tenant.ID))
	resp, err := svc.GetByID(ctx, signup.Tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, "suspended", resp.Status)

	require.NoError(t, svc.Activate(ctx, signup.Tenant.ID))
	resp, err = svc.GetByID(ctx, signup.Tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)
}
