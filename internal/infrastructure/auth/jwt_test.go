package auth

import (
	"testing"
	"time"

	"github.com/craftbase/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	cfg := config.JWTConfig{
		Secret: "test-secret-key-at-least-32-chars",
		TTL:    15 * time.Minute,
		Issuer: "craftbase-test",
	}
	return NewJWTService(cfg)
}

func TestGenerateToken(t *testing.T) {
	svc := newTestJWTService()
	tenantID := uuid.New()

	token, expiresAt, err := svc.GenerateToken(tenantID, "owner@example.com")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
}

func TestValidateToken_Success(t *testing.T) {
	svc := newTestJWTService()
	tenantID := uuid.New()

	token, _, err := svc.GenerateToken(tenantID, "owner@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)

	require.NoError(t, err)
	assert.Equal(t, tenantID.String(), claims.TenantID)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Equal(t, "craftbase-test", claims.Issuer)

	parsed, err := claims.GetTenantUUID()
	require.NoError(t, err)
	assert.Equal(t, tenantID, parsed)
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret: "test-secret-key-at-least-32-chars",
		TTL:    -1 * time.Hour, // Already expired
		Issuer: "craftbase-test",
	}
	svc := NewJWTService(cfg)

	token, _, err := svc.GenerateToken(uuid.New(), "")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_InvalidToken(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.ValidateToken("not-a-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestJWTService()
	token, _, err := svc.GenerateToken(uuid.New(), "")
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret: "a-completely-different-secret-key",
		TTL:    15 * time.Minute,
		Issuer: "craftbase-test",
	})

	_, err = other.ValidateToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSigningMethod(t *testing.T) {
	svc := newTestJWTService()

	// Tokens signed with anything but HMAC are rejected outright.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		TenantID: uuid.New().String(),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_MissingTenantID(t *testing.T) {
	svc := newTestJWTService()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte("test-secret-key-at-least-32-chars"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)

	assert.ErrorIs(t, err, ErrMissingTenantID)
}
