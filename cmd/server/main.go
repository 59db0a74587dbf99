package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appbundle "github.com/bundlebuilder/backend/internal/application/bundle"
	"github.com/bundlebuilder/backend/internal/infrastructure/config"
	"github.com/bundlebuilder/backend/internal/infrastructure/logger"
	"github.com/bundlebuilder/backend/internal/infrastructure/persistence"
	"github.com/bundlebuilder/backend/internal/infrastructure/storefront"
	"github.com/bundlebuilder/backend/internal/interfaces/http/handler"
	"github.com/bundlebuilder/backend/internal/interfaces/http/middleware"
	"github.com/bundlebuilder/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
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
		_ = logger.Sync(log)
	}()

	log.Info("Starting Bundle Builder Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	bundleRepo := persistence.NewGormBundleRepository(db.DB)
	productRepo := persistence.NewGormBundleProductRepository(db.DB)

	// Initialize the storefront catalog gateway. The server boots
	// without catalog credentials; catalog endpoints return a gateway
	// error until a shop is configured.
	var defaultShopConfig *storefront.ShopifyConfig
	if cfg.Storefront.ShopDomain != "" {
		defaultShopConfig = storefront.NewShopifyConfig(cfg.Storefront.ShopDomain, cfg.Storefront.AccessToken)
		defaultShopConfig.APIVersion = cfg.Storefront.APIVersion
		defaultShopConfig.TimeoutSeconds = cfg.Storefront.TimeoutSeconds
	}
	gateway, err := storefront.NewShopifyGateway(defaultShopConfig)
	if err != nil {
		log.Fatal("Failed to initialize storefront gateway", zap.Error(err))
	}
	if defaultShopConfig == nil {
		log.Warn("Storefront catalog not configured; catalog endpoints will be unavailable")
	}

	// Initialize application services
	bundleService := appbundle.NewService(bundleRepo, productRepo)
	editorService := appbundle.NewEditorService(bundleRepo, gateway)

	// Initialize handlers
	bundleHandler := handler.NewBundleHandler(bundleService, editorService)
	catalogHandler := handler.NewCatalogHandler(editorService)
	systemHandler := handler.NewSystemHandler()

	// Configure gin
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TenantMiddleware())

	// Health check stays outside the versioned API and skips tenant checks
	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine)

	bundleRoutes := router.NewDomainGroup("bundles", "/bundles")
	bundleRoutes.GET("", bundleHandler.List)
	bundleRoutes.POST("", bundleHandler.Create)
	bundleRoutes.GET("/:id", bundleHandler.Get)
	bundleRoutes.PUT("/:id", bundleHandler.Update)
	bundleRoutes.GET("/:id/editor", bundleHandler.Editor)
	bundleRoutes.POST("/:id/products", bundleHandler.AttachProduct)
	bundleRoutes.DELETE("/:id/products/:product_id", bundleHandler.DetachProduct)

	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.GET("/candidates", catalogHandler.ListCandidates)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(bundleRoutes).
		Register(catalogRoutes).
		Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
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

// healthHandler returns a handler for health check endpoints
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
