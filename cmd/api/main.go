package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashimpk07/FMPortal-sub002/docs"
	"github.com/hashimpk07/FMPortal-sub002/internal/auth"
	"github.com/hashimpk07/FMPortal-sub002/internal/cache"
	"github.com/hashimpk07/FMPortal-sub002/internal/config"
	"github.com/hashimpk07/FMPortal-sub002/internal/gateway"
	"github.com/hashimpk07/FMPortal-sub002/internal/http/handler"
	"github.com/hashimpk07/FMPortal-sub002/internal/http/middleware"
	"github.com/hashimpk07/FMPortal-sub002/internal/http/router"
	"github.com/hashimpk07/FMPortal-sub002/internal/jobs"
	"github.com/hashimpk07/FMPortal-sub002/internal/logger"
	"github.com/hashimpk07/FMPortal-sub002/internal/service"
	"github.com/hashimpk07/FMPortal-sub002/internal/store"
	"go.uber.org/zap"
)

// @title FM Portal Dashboard API
// @version 1.0
// @description Facilities-management dashboard aggregation service
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@fmportal.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "dashboard-api-staging.fmportal.app"
	case "production":
		docs.SwaggerInfo.Host = "dashboard-api.fmportal.app"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to the FM Portal gateway
	gatewayClient, err := gateway.NewClient(&cfg.Gateway, log)
	if err != nil {
		return fmt.Errorf("failed to create gateway client: %w", err)
	}

	// Initialize the centre-list cache
	var centreCache cache.Cache
	switch cfg.Cache.Mode {
	case "redis":
		centreCache, err = cache.NewRedis(ctx, &cfg.Cache)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
	default:
		centreCache = cache.NewMemory()
	}
	log.Info("Cache initialized", zap.String("mode", cfg.Cache.Mode))

	// Initialize the dashboard state store and services
	st := store.New()
	dashboardService := service.NewDashboardService(gatewayClient, st, log)
	filterService := service.NewFilterService(&cfg.Dashboard, st, dashboardService, log)
	centreService := service.NewCentreService(gatewayClient, centreCache, st, cfg.Cache.TTLDuration(), log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(
		auth.NewValidator(cfg.Auth.SigningSecret, cfg.Auth.Issuer),
		cfg.Auth.Enabled,
		log,
	)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	dashboardHandler := handler.NewDashboardHandler(st, dashboardService, filterService, log)
	centreHandler := handler.NewCentreHandler(centreService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		gatewayClient,
		authMiddleware,
		rateLimiter,
		dashboardHandler,
		centreHandler,
	)

	// Initialize and start scheduler for the background refresh
	var scheduler *jobs.Scheduler
	if cfg.Dashboard.RefreshCron != "" {
		scheduler = jobs.NewScheduler(log)
		if err := jobs.RegisterDashboardRefreshJob(
			scheduler,
			dashboardService,
			log,
			cfg.Dashboard.RefreshCron,
			jobs.DefaultRefreshTimeout,
		); err != nil {
			log.Error("Failed to register dashboard refresh job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with dashboard refresh job",
				zap.String("cron_expr", cfg.Dashboard.RefreshCron),
			)
		}
	} else {
		log.Info("Periodic dashboard refresh disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if err := centreCache.Close(); err != nil {
			log.Warn("Error closing cache", zap.Error(err))
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
