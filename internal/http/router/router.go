package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hashimpk07/FMPortal-sub002/internal/auth"
	"github.com/hashimpk07/FMPortal-sub002/internal/config"
	"github.com/hashimpk07/FMPortal-sub002/internal/gateway"
	"github.com/hashimpk07/FMPortal-sub002/internal/http/handler"
	"github.com/hashimpk07/FMPortal-sub002/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/hashimpk07/FMPortal-sub002/docs" // Import generated swagger docs
)

type Router struct {
	cfg              *config.Config
	logger           *zap.Logger
	gatewayClient    *gateway.Client
	authMiddleware   *auth.Middleware
	rateLimiter      *middleware.RateLimiter
	dashboardHandler *handler.DashboardHandler
	centreHandler    *handler.CentreHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	gatewayClient *gateway.Client,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	dashboardHandler *handler.DashboardHandler,
	centreHandler *handler.CentreHandler,
) *Router {
	return &Router{
		cfg:              cfg,
		logger:           logger,
		gatewayClient:    gatewayClient,
		authMiddleware:   authMiddleware,
		rateLimiter:      rateLimiter,
		dashboardHandler: dashboardHandler,
		centreHandler:    centreHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP) // Apply IP-based rate limiting globally

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Gateway health check (readiness probe)
	r.Get("/health/gateway", func(w http.ResponseWriter, r *http.Request) {
		status := rt.gatewayClient.HealthCheck(r.Context())

		w.Header().Set("Content-Type", "application/json")
		if status.Status != "healthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":     status.Status,
			"service":    "gateway",
			"latency_ms": status.Latency.Milliseconds(),
			"error":      status.Error,
		})
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.RequireAuth)

			// Centres
			r.Get("/centres", rt.centreHandler.ListCentres)

			// Dashboard
			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/", rt.dashboardHandler.GetDashboard)
				r.Post("/refresh", rt.dashboardHandler.RefreshDashboard)
				r.Put("/filters", rt.dashboardHandler.UpdateFilters)
				r.Get("/filters/bounds", rt.dashboardHandler.GetFilterBounds)
			})
		})
	})

	return r
}
