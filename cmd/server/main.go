package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/smartauto/backend/internal/application/catalog"
	feedbackapp "github.com/smartauto/backend/internal/application/feedback"
	identityapp "github.com/smartauto/backend/internal/application/identity"
	relayapp "github.com/smartauto/backend/internal/application/relay"
	reportapp "github.com/smartauto/backend/internal/application/report"
	tradeapp "github.com/smartauto/backend/internal/application/trade"
	"github.com/smartauto/backend/internal/infrastructure/auth"
	"github.com/smartauto/backend/internal/infrastructure/config"
	"github.com/smartauto/backend/internal/infrastructure/logger"
	"github.com/smartauto/backend/internal/infrastructure/persistence"
	"github.com/smartauto/backend/internal/infrastructure/storage"
	"github.com/smartauto/backend/internal/infrastructure/telemetry"
	"github.com/smartauto/backend/internal/infrastructure/webhook"
	"github.com/smartauto/backend/internal/interfaces/http/handler"
	"github.com/smartauto/backend/internal/interfaces/http/middleware"
	"github.com/smartauto/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting SmartAuto backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	dbTracing := telemetry.DefaultDBTracingConfig()
	dbTracing.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled
	if err := telemetry.NewDBTracingPlugin(dbTracing, log).Register(db.DB); err != nil {
		log.Error("Failed to register database tracing", zap.Error(err))
	}

	// Token blacklist: Redis in production, in-memory when unreachable
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		if cfg.App.Env == "production" {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, falling back to in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
	}

	// Backup object store
	var backupStore storage.BackupStore
	if cfg.Storage.Enabled {
		s3Store, err := storage.NewS3BackupStore(&cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize S3 backup store", zap.Error(err))
		}
		backupStore = s3Store
	} else {
		log.Warn("Object storage disabled, backups are kept in memory")
		backupStore = storage.NewInMemoryBackupStore()
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	complaintRepo := persistence.NewGormComplaintRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	forwarder := webhook.NewForwarder(cfg.Webhook, log)

	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	productService := catalogapp.NewProductService(productRepo, log)
	orderService := tradeapp.NewOrderService(orderRepo, productRepo, forwarder, log)
	complaintService := feedbackapp.NewComplaintService(complaintRepo, forwarder, log)
	reviewService := feedbackapp.NewReviewService(reviewRepo, productRepo, forwarder, log)
	relayService := relayapp.NewRelayService(forwarder, log)
	ownerService := reportapp.NewOwnerService(orderRepo, complaintRepo, reviewRepo, productRepo, backupStore, log)

	if err := authService.EnsureOwner(ctx, cfg.Owner.Email, cfg.Owner.Password, cfg.Owner.DisplayName); err != nil {
		log.Fatal("Failed to bootstrap owner account", zap.Error(err))
	}

	engine := router.Setup(router.Config{
		HTTPConfig:     cfg.HTTP,
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		MeterProvider:  meterProvider,
		TracingEnabled: cfg.Telemetry.Enabled,
		ServiceName:    cfg.Telemetry.ServiceName,
		Logger:         log,

		SystemHandler:    handler.NewSystemHandler(db.DB),
		AuthHandler:      handler.NewAuthHandler(authService),
		ProductHandler:   handler.NewProductHandler(productService),
		OrderHandler:     handler.NewOrderHandler(orderService),
		ComplaintHandler: handler.NewComplaintHandler(complaintService),
		ReviewHandler:    handler.NewReviewHandler(reviewService),
		RelayHandler:     handler.NewRelayHandler(relayService, jwtService, cfg.Webhook.RelayKey, log),
		OwnerHandler:     handler.NewOwnerHandler(ownerService, orderService, complaintService),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Meter provider shutdown error", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Tracer provider shutdown error", zap.Error(err))
	}

	log.Info("Shutdown complete")
}
