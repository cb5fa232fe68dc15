package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/api"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/db"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/jobs"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/logging"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/metrics"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func RegisterRoutes(upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-API-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")
	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	// Initialize dependencies using DI pattern
	deps, err := api.InitDependencies(metricsReg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// Initialize handlers with dependencies
	handlers := api.NewHandlers(deps)

	// Start background jobs
	jobs.InitializeJobs(context.Background(), deps.Services.Templates)

	RegisterAPIRoutes(r, deps, handlers)

	return r
}
