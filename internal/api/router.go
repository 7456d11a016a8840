// Package api wires the HTTP handlers into a chi router.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/vannoorsab/FINAI/internal/api/handlers"
	"github.com/vannoorsab/FINAI/internal/api/middleware"
)

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Assessments *handlers.AssessmentsHandler
	Jobs        *handlers.JobsHandler
	Marketplace *handlers.MarketplaceHandler
	Insights    *handlers.InsightsHandler
	Features    handlers.Features
}

// NewRouter builds the service router. maxBody caps statement uploads.
func NewRouter(log zerolog.Logger, maxBody int64, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS)

	r.Get("/health", handlers.Health(h.Features))

	r.Route("/api", func(r chi.Router) {
		upload := r.With(middleware.BodyLimit(maxBody))

		r.Get("/assessments", h.Assessments.ListAssessments)
		r.Get("/assessments/{id}", h.Assessments.GetAssessment)
		upload.Post("/assessments", h.Assessments.CreateAssessment)
		upload.Post("/assessments/jobs", h.Assessments.EnqueueAssessment)

		if h.Jobs != nil {
			r.Get("/jobs", h.Jobs.ListJobs)
			r.Get("/jobs/{id}", h.Jobs.GetJob)
		}

		upload.Post("/marketplace", h.Marketplace.Evaluate)
		upload.Post("/insights", h.Insights.Analyze)
	})

	return r
}
