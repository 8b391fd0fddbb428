package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/craftbase/backend/internal/application/catalog"
	crmapp "github.com/craftbase/backend/internal/application/crm"
	identityapp "github.com/craftbase/backend/internal/application/identity"
	tradeapp "github.com/craftbase/backend/internal/application/trade"
	"github.com/craftbase/backend/internal/infrastructure/auth"
	"github.com/craftbase/backend/internal/infrastructure/config"
	"github.com/craftbase/backend/internal/infrastructure/event"
	"github.com/craftbase/backend/internal/infrastructure/logger"
	"github.com/craftbase/backend/internal/infrastructure/persistence"
	"github.com/craftbase/backend/internal/interfaces/http/handler"
	"github.com/craftbase/backend/internal/interfaces/http/middleware"
	"github.com/craftbase/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("CRAFTBASE_CONFIG"))
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		panic("Invalid configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting craftbase backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.String("addr", cfg.HTTP.Addr()),
	)

	gormLevel := gormlogger.Warn
	if cfg.Log.Level == "debug" {
		gormLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Event bus with outbound message notification
	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(crmapp.NewOutboundNotifier(log, nil))

	// Repositories and services
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	factory := persistence.NewGormTenantFactory(db.DB)
	jwtService := auth.NewJWTService(cfg.JWT)

	tenantService := identityapp.NewTenantService(tenantRepo, jwtService, log)
	ingredientService := catalogapp.NewIngredientService(factory)
	recipeService := catalogapp.NewRecipeService(factory)
	productService := catalogapp.NewProductService(factory)
	contactService := crmapp.NewContactService(factory, bus)
	messageService := crmapp.NewMessageService(factory, bus)
	orderService := tradeapp.NewOrderService(factory)

	// Handlers
	tenantHandler := handler.NewTenantHandler(tenantService)
	ingredientHandler := handler.NewIngredientHandler(ingredientService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	productHandler := handler.NewProductHandler(productService)
	contactHandler := handler.NewContactHandler(contactService, messageService)
	orderHandler := handler.NewOrderHandler(orderService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.RequestLogger(log))
	engine.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	engine.GET("/health", healthHandler(db))

	tenantAuth := middleware.TenantAuth(middleware.TenantConfig{
		JWTService:     jwtService,
		HeaderFallback: !cfg.IsProduction(),
		TenantRepo:     tenantRepo,
		Logger:         log,
	})

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithAuthMiddleware(tenantAuth),
	)
	r.RegisterPublic(tenantHandler)
	r.Register(tenantHandler).
		Register(ingredientHandler).
		Register(recipeHandler).
		Register(productHandler).
		Register(contactHandler).
		Register(orderHandler)
	r.Setup()

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
