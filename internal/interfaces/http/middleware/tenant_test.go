package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/craftbase/backend/internal/domain/identity"
	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/craftbase/backend/internal/infrastructure/auth"
	"github.com/craftbase/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubTenantRepo serves a fixed set of tenants by id
type stubTenantRepo struct {
	tenants map[uuid.UUID]*identity.Tenant
}

func (r *stubTenantRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.Tenant, error) {
	if t, ok := r.tenants[id]; ok {
		return t, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubTenantRepo) Save(context.Context, *identity.Tenant) error { return nil }
func (r *stubTenantRepo) Delete(context.Context, uuid.UUID) error      { return nil }
func (r *stubTenantRepo) Count(context.Context) (int64, error)         { return 0, nil }

func newAuthTestRouter(cfg TenantConfig) *gin.Engine {
	engine := gin.New()
	engine.Use(RequestID(), TenantAuth(cfg))
	engine.GET("/probe", func(c *gin.Context) {
		tenantID, ok := GetTenantID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no tenant in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"tenant_id": tenantID.String()})
	})
	return engine
}

func newTestJWT() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret: "test-secret-key-at-least-32-chars",
		TTL:    time.Hour,
		Issuer: "craftbase-test",
	})
}

func TestTenantAuth_BearerToken(t *testing.T) {
	jwtService := newTestJWT()
	router := newAuthTestRouter(TenantConfig{JWTService: jwtService})
	tenantID := uuid.New()

	t.Run("valid token binds the tenant", func(t *testing.T) {
		token, _, err := jwtService.GenerateToken(tenantID, "")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), tenantID.String())
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing credential is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("header is ignored when fallback is off", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(TenantHeaderKey, uuid.New().String())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestTenantAuth_HeaderFallback(t *testing.T) {
	router := newAuthTestRouter(TenantConfig{JWTService: newTestJWT(), HeaderFallback: true})
	tenantID := uuid.New()

	t.Run("accepts a well-formed tenant header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(TenantHeaderKey, tenantID.String())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), tenantID.String())
	})

	t.Run("rejects a malformed tenant header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(TenantHeaderKey, "not-a-uuid")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestTenantAuth_SuspendedTenant(t *testing.T) {
	active, err := identity.NewTenant("Active Bakery", "free")
	require.NoError(t, err)
	suspended, err := identity.NewTenant("Suspended Bakery", "free")
	require.NoError(t, err)
	suspended.Suspend()

	repo := &stubTenantRepo{tenants: map[uuid.UUID]*identity.Tenant{
		active.ID:    active,
		suspended.ID: suspended,
	}}
	router := newAuthTestRouter(TenantConfig{
		JWTService:     newTestJWT(),
		HeaderFallback: true,
		TenantRepo:     repo,
	})

	t.Run("active tenant passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(TenantHeaderKey, active.ID.String())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("suspended tenant gets 403", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(TenantHeaderKey, suspended.ID.String())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown tenant gets 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(TenantHeaderKey, uuid.New().String())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
