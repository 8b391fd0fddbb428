package middleware

import (
	"net/http"
	"strings"

	"github.com/craftbase/backend/internal/domain/identity"
	"github.com/craftbase/backend/internal/infrastructure/auth"
	"github.com/craftbase/backend/internal/infrastructure/logger"
	httpdto "github.com/craftbase/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context and header keys for tenant extraction
const (
	TenantIDContextKey = "tenant_id"
	TenantHeaderKey    = "X-Tenant-ID"
)

// TenantConfig holds configuration for the tenant middleware
type TenantConfig struct {
	JWTService *auth.JWTService
	// HeaderFallback allows X-Tenant-ID when no bearer token is present.
	// Development convenience; off in production.
	HeaderFallback bool
	// TenantRepo, when set, rejects requests for suspended tenants
	TenantRepo identity.TenantRepository
	Logger     *zap.Logger
}

// TenantAuth extracts the tenant from the bearer token (or header when the
// fallback is enabled) and aborts with 401 when no tenant can be bound.
// Every route behind it runs with a verified tenant id in context.
func TenantAuth(cfg TenantConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, ok := extractTenantID(c, cfg)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				httpdto.NewErrorResponseWithRequestID(httpdto.ErrCodeUnauthorized, "A valid tenant credential is required", GetRequestID(c)))
			return
		}

		if cfg.TenantRepo != nil {
			tenant, err := cfg.TenantRepo.FindByID(c.Request.Context(), tenantID)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					httpdto.NewErrorResponseWithRequestID(httpdto.ErrCodeUnauthorized, "Unknown tenant", GetRequestID(c)))
				return
			}
			if !tenant.IsActive() {
				c.AbortWithStatusJSON(http.StatusForbidden,
					httpdto.NewErrorResponseWithRequestID(httpdto.ErrCodeForbidden, "Tenant account is suspended", GetRequestID(c)))
				return
			}
		}

		c.Set(TenantIDContextKey, tenantID.String())

		ctx := c.Request.Context()
		ctx, _ = logger.WithTenantID(ctx, logger.FromContext(ctx), tenantID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func extractTenantID(c *gin.Context, cfg TenantConfig) (uuid.UUID, bool) {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") && cfg.JWTService != nil {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := cfg.JWTService.ValidateToken(token)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Debug("token validation failed", zap.Error(err))
			}
			return uuid.Nil, false
		}
		tenantID, err := claims.GetTenantUUID()
		if err != nil {
			return uuid.Nil, false
		}
		return tenantID, true
	}

	if cfg.HeaderFallback {
		if header := c.GetHeader(TenantHeaderKey); header != "" {
			tenantID, err := uuid.Parse(header)
			if err == nil && tenantID != uuid.Nil {
				return tenantID, true
			}
		}
	}

	return uuid.Nil, false
}

// GetTenantID returns the verified tenant ID of this request
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	value := c.GetString(TenantIDContextKey)
	if value == "" {
		return uuid.Nil, false
	}
	tenantID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, false
	}
	return tenantID, true
}
