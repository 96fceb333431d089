package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wms3pl/backend/internal/application/billing"
	"github.com/wms3pl/backend/internal/application/client"
	"github.com/wms3pl/backend/internal/application/report"
	"github.com/wms3pl/backend/internal/domain/tenancy"
	"github.com/wms3pl/backend/internal/infrastructure/auth"
	"github.com/wms3pl/backend/internal/infrastructure/config"
	"github.com/wms3pl/backend/internal/infrastructure/logger"
	"github.com/wms3pl/backend/internal/infrastructure/persistence"
	"github.com/wms3pl/backend/internal/infrastructure/telemetry"
	"github.com/wms3pl/backend/internal/interfaces/http/handler"
	"github.com/wms3pl/backend/internal/interfaces/http/middleware"
	"github.com/wms3pl/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const serviceVersion = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	baseLog, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	providers, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    serviceVersion,
		Insecure:          cfg.Telemetry.Insecure,
	}, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := providers.Shutdown(context.Background()); err != nil {
			baseLog.Error("Telemetry shutdown failed", zap.Error(err))
		}
	}()

	log := providers.BridgeLogger(baseLog)
	defer func() { _ = log.Sync() }()

	log.Info("Starting WMS backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.Bool("telemetry", providers.Enabled()),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.GormMode), 200*time.Millisecond)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled: cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:  cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	var blacklist auth.TokenBlacklist
	if cfg.Redis.Addr() != "" {
		redisClient, err := auth.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		log.Info("Token blacklist enabled", zap.String("redis", cfg.Redis.Addr()))
	}

	businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:  providers.Meter("wms-backend/business"),
		Logger: log,
	})
	if err != nil {
		log.Fatal("Failed to register business metrics", zap.Error(err))
	}

	// Repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	inventoryRepo := persistence.NewGormInventoryRepository(db.DB)
	operationsRepo := persistence.NewGormOperationsRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)

	// Services
	resolver := tenancy.NewResolver(tenantRepo)
	clientService := client.NewClientService(tenantRepo)
	aggregationService := report.NewAggregationService(inventoryRepo, operationsRepo, businessMetrics)
	invoiceService := billing.NewInvoiceService(resolver, tenantRepo, operationsRepo, invoiceRepo, businessMetrics,
		billing.InvoiceServiceConfig{DueDays: cfg.Billing.DueDays})

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins

	engine, err := router.NewEngine(router.EngineConfig{
		Logger: log,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     providers.Enabled(),
		},
		CORS:           corsCfg,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		Meter:          providers.Meter("wms-backend/http"),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	handler.NewHealthHandler(db).RegisterRoutes(&engine.RouterGroup)

	router.NewRouter(engine, router.WithGroupMiddleware(
		middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService:     auth.NewJWTService(cfg.JWT),
			TokenBlacklist: blacklist,
			Logger:         log,
		}),
		middleware.TracingAttributeInjector(),
	)).
		Register(handler.NewClientHandler(clientService)).
		Register(handler.NewReportHandler(resolver, aggregationService)).
		Register(handler.NewBillingHandler(resolver, invoiceService)).
		Setup()

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	log.Info("Server exited gracefully")
}
