// Package testutil assembles a fully wired API server over an in-memory
// database for integration tests. The stack matches production wiring:
// real services, real repositories, real middleware; only the database
// driver and the delivery channel differ.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appcatalog "github.com/craftbase/backend/internal/application/catalog"
	appcrm "github.com/craftbase/backend/internal/application/crm"
	appidentity "github.com/craftbase/backend/internal/application/identity"
	apptrade "github.com/craftbase/backend/internal/application/trade"
	"github.com/craftbase/backend/internal/domain/catalog"
	"github.com/craftbase/backend/internal/domain/crm"
	"github.com/craftbase/backend/internal/domain/identity"
	"github.com/craftbase/backend/internal/domain/trade"
	"github.com/craftbase/backend/internal/infrastructure/auth"
	"github.com/craftbase/backend/internal/infrastructure/config"
	"github.com/craftbase/backend/internal/infrastructure/event"
	"github.com/craftbase/backend/internal/infrastructure/persistence"
	"github.com/craftbase/backend/internal/interfaces/http/dto"
	"github.com/craftbase/backend/internal/interfaces/http/handler"
	"github.com/craftbase/backend/internal/interfaces/http/middleware"
	"github.com/craftbase/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// Server is a wired API instance backed by an in-memory database
type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
}

// NewServer builds the full HTTP stack over sqlite
func NewServer(t *testing.T) *Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&identity.Tenant{},
		&catalog.Ingredient{},
		&catalog.Recipe{},
		&catalog.RecipeItem{},
		&catalog.Product{},
		&catalog.ProductRecipeComponent{},
		&catalog.ProductPackagingComponent{},
		&crm.Contact{},
		&crm.Message{},
		&trade.Order{},
		&trade.OrderItem{},
	))

	log := zap.NewNop()
	tenantRepo := persistence.NewGormTenantRepository(db)
	factory := persistence.NewGormTenantFactory(db)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret: "integration-test-secret-32-chars!",
		TTL:    time.Hour,
		Issuer: "craftbase-test",
	})
	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(appcrm.NewOutboundNotifier(log, nil))

	tenantHandler := handler.NewTenantHandler(appidentity.NewTenantService(tenantRepo, jwtService, log))
	ingredientHandler := handler.NewIngredientHandler(appcatalog.NewIngredientService(factory))
	recipeHandler := handler.NewRecipeHandler(appcatalog.NewRecipeService(factory))
	productHandler := handler.NewProductHandler(appcatalog.NewProductService(factory))
	contactHandler := handler.NewContactHandler(
		appcrm.NewContactService(factory, bus),
		appcrm.NewMessageService(factory, bus),
	)
	orderHandler := handler.NewOrderHandler(apptrade.NewOrderService(factory))

	engine := gin.New()
	engine.Use(middleware.RequestID())

	tenantAuth := middleware.TenantAuth(middleware.TenantConfig{
		JWTService: jwtService,
		TenantRepo: tenantRepo,
		Logger:     log,
	})

	r := router.NewRouter(engine, router.WithAuthMiddleware(tenantAuth))
	r.RegisterPublic(tenantHandler)
	r.Register(tenantHandler).
		Register(ingredientHandler).
		Register(recipeHandler).
		Register(productHandler).
		Register(contactHandler).
		Register(orderHandler)
	r.Setup()

	return &Server{Engine: engine, DB: db}
}

// Signup creates a tenant account and returns its access token
func (s *Server) Signup(t *testing.T, name string) string {
	t.Helper()

	rec := s.Request(t, http.MethodPost, "/api/v1/signup", "", map[string]any{
		"name": name,
		"plan": "starter",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	DecodeData(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// Request performs a JSON request against the server
func (s *Server) Request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.Engine.ServeHTTP(rec, req)
	return rec
}

// DecodeData unmarshals the data field of a response envelope
func DecodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, rec.Body.String())

	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

// DecodeError unmarshals the error field of a response envelope
func DecodeError(t *testing.T, rec *httptest.ResponseRecorder) *dto.ErrorInfo {
	t.Helper()

	var envelope dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.False(t, envelope.Success, rec.Body.String())
	require.NotNil(t, envelope.Error)
	return envelope.Error
}
