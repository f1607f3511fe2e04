package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appbilling "github.com/colaai/backend/internal/application/billing"
	appidentity "github.com/colaai/backend/internal/application/identity"
	"github.com/colaai/backend/internal/application/menu"
	appnotification "github.com/colaai/backend/internal/application/notification"
	"github.com/colaai/backend/internal/infrastructure/auth"
	infrabilling "github.com/colaai/backend/internal/infrastructure/billing"
	"github.com/colaai/backend/internal/infrastructure/cache"
	"github.com/colaai/backend/internal/infrastructure/config"
	"github.com/colaai/backend/internal/infrastructure/logger"
	infranotification "github.com/colaai/backend/internal/infrastructure/notification"
	"github.com/colaai/backend/internal/infrastructure/persistence"
	"github.com/colaai/backend/internal/interfaces/http/handler"
	"github.com/colaai/backend/internal/interfaces/http/middleware"
	"github.com/colaai/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Cola Aí backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with zap-backed GORM logging
	gormLevel := gormlogger.Warn
	if cfg.Log.Level == "debug" {
		gormLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.NewGormLogger(log, gormLevel))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis menu cache
	menuCache, err := cache.NewRedisMenuCache(cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer func() {
		if err := menuCache.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// Billing provider
	stripeCfg := &infrabilling.StripeConfig{
		SecretKey:     cfg.Stripe.SecretKey,
		WebhookSecret: cfg.Stripe.WebhookSecret,
		IsTestMode:    cfg.Stripe.IsTestMode,
	}
	if err := stripeCfg.Validate(); err != nil {
		log.Fatal("Invalid billing configuration", zap.Error(err))
	}
	stripeCfg.InitStripeClient()
	customerAPI, err := infrabilling.NewStripeCustomerAPI(stripeCfg, log)
	if err != nil {
		log.Fatal("Failed to create billing client", zap.Error(err))
	}

	// Notification channels
	pushClient := infranotification.NewPushClient(cfg.Push, log)
	telegramClient := infranotification.NewTelegramClient(cfg.Telegram, log)
	dispatcher := appnotification.NewDispatcher(pushClient, telegramClient, log)

	// Repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	userService := appidentity.NewUserService(userRepo, jwtService, log)
	manifestService := menu.NewManifestService(tenantRepo, log)
	revalidateService := menu.NewRevalidateService(tenantRepo, menuCache, log)
	customerResolver := appbilling.NewCustomerResolver(customerAPI, log)
	accountService := appbilling.NewAccountService(customerResolver, tenantRepo, log)
	webhookService := appbilling.NewWebhookService(appbilling.WebhookServiceConfig{
		Config:     stripeCfg,
		TenantRepo: tenantRepo,
		Notifier:   dispatcher,
		Logger:     log,
	})

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.JWTAuth(middleware.JWTConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/api/v1/auth/login",
			"/api/v1/webhooks/stripe",
			"/api/v1/manifest/*",
		},
		OptionalPaths: []string{
			"/api/v1/menu/revalidate",
		},
		Logger: log,
	}))

	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewAuthHandler(userService, log)).
		Register(handler.NewManifestHandler(manifestService, log)).
		Register(handler.NewMenuHandler(revalidateService, log)).
		Register(handler.NewPushHandler(dispatcher, log)).
		Register(handler.NewPaymentNotifyHandler(dispatcher, log)).
		Register(handler.NewAdminUsersHandler(userService, log)).
		Register(handler.NewAdminBillingHandler(accountService, log)).
		Register(handler.NewStripeWebhookHandler(webhookService, log))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
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
			logger.FromGin(c).Warn("Health check failed", zap.Error(err))
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
