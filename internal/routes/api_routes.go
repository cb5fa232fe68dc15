package routes

import (
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/api"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, handlers *api.Handlers) {

	// Presigned export downloads bypass API-key auth; the token is the credential
	r.Get("/exports/download", handlers.DownloadExportHandler())

	// API v1 routes
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.AuthMiddleware(deps.Repo.Keys)) // global: all routes must present an active API key

		v1.Post("/datasets", handlers.IngestDataset())
		v1.Get("/datasets/{dataset_id}", handlers.GetDataset())
		v1.Delete("/datasets/{dataset_id}", handlers.DeleteDataset())

		v1.Post("/mappings/auto", handlers.AutoMap())
		v1.Post("/mappings/validate", handlers.ValidateMappings())
		v1.Post("/mappings/preview", handlers.PreviewMappings())

		v1.Get("/templates", handlers.ListTemplates())
		v1.Get("/templates/suggest", handlers.SuggestTemplates())
		v1.Post("/templates", handlers.SaveTemplate())
		v1.Delete("/templates/{template_id}", handlers.DeleteTemplate())

		v1.Post("/exports/link", handlers.GenerateExportLinkHandler())
	})
}
