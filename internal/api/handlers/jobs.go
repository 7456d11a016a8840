package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vannoorsab/FINAI/internal/api/middleware"
	"github.com/vannoorsab/FINAI/internal/domain"
	"github.com/vannoorsab/FINAI/internal/jobs"
	"github.com/vannoorsab/FINAI/internal/logger"
)

const defaultJobLimit = 50

// JobsHandler handles job status endpoints.
type JobsHandler struct {
	store jobs.JobStore
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(store jobs.JobStore) *JobsHandler {
	return &JobsHandler{store: store}
}

// GetJob handles GET /api/jobs/{id}
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	job, err := h.store.GetJob(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, logger.FromContext(ctx), err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, job)
}

// ListJobs handles GET /api/jobs
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	filter := jobs.JobFilter{Status: jobs.JobStatus(r.URL.Query().Get("status"))}
	switch filter.Status {
	case "", jobs.JobStatusPending, jobs.JobStatusRunning, jobs.JobStatusCompleted, jobs.JobStatusFailed:
	default:
		writeDomainError(w, log, domain.NewValidationError("unknown job status %q", filter.Status))
		return
	}

	var err error
	if filter.Limit, err = queryInt(r, "limit", defaultJobLimit); err != nil {
		writeDomainError(w, log, err)
		return
	}
	if filter.Offset, err = queryInt(r, "offset", 0); err != nil {
		writeDomainError(w, log, err)
		return
	}

	list, err := h.store.ListJobs(ctx, filter)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  list,
		"count": len(list),
	})
}
