package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/vannoorsab/FINAI/internal/api/middleware"
	"github.com/vannoorsab/FINAI/internal/cache"
	"github.com/vannoorsab/FINAI/internal/domain"
	"github.com/vannoorsab/FINAI/internal/jobs"
	"github.com/vannoorsab/FINAI/internal/logger"
	"github.com/vannoorsab/FINAI/internal/pipeline"
	"github.com/vannoorsab/FINAI/internal/store"
)

// CacheHeader reports where an assessment came from: HIT, STORE or MISS.
const CacheHeader = "X-Cache"

// AssessmentsHandler handles assessment endpoints.
type AssessmentsHandler struct {
	assessor  Assessor
	repo      store.AssessmentRepository
	publisher jobs.Publisher
	cache     *cache.Cache
	archiver  StatementArchiver
	bucket    string
	timeout   time.Duration
	log       zerolog.Logger
}

// NewAssessmentsHandler creates a new assessments handler. repo and publisher
// may be nil; the endpoints that need them then answer 503.
func NewAssessmentsHandler(assessor Assessor, repo store.AssessmentRepository, publisher jobs.Publisher, log zerolog.Logger) *AssessmentsHandler {
	return &AssessmentsHandler{
		assessor:  assessor,
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// WithCache enables result caching by checksum and strategy.
func (h *AssessmentsHandler) WithCache(c *cache.Cache) *AssessmentsHandler {
	h.cache = c
	return h
}

// WithArchive archives every assessed statement in bucket.
func (h *AssessmentsHandler) WithArchive(archiver StatementArchiver, bucket string) *AssessmentsHandler {
	h.archiver = archiver
	h.bucket = bucket
	return h
}

// WithTimeout bounds archive and store calls.
func (h *AssessmentsHandler) WithTimeout(d time.Duration) *AssessmentsHandler {
	h.timeout = d
	return h
}

// CreateAssessment handles POST /api/assessments
func (h *AssessmentsHandler) CreateAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	strategy, err := parseStrategy(r)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}

	checksum := pipeline.Checksum(body)
	sourceURI := r.URL.Query().Get("source_uri")
	key := cache.Key("assessment", checksum, string(strategy))
	if a, ok := cache.Lookup[*domain.Assessment](h.cache, key); ok {
		w.Header().Set(CacheHeader, "HIT")
		middleware.WriteJSON(w, http.StatusOK, withSourceURI(a, sourceURI))
		return
	}

	if a := h.findExisting(r, checksum, strategy); a != nil {
		h.remember(key, a)
		w.Header().Set(CacheHeader, "STORE")
		middleware.WriteJSON(w, http.StatusOK, withSourceURI(a, sourceURI))
		return
	}

	a, err := h.assessor.Assess(ctx, pipeline.Request{
		Strategy:  strategy,
		Document:  body,
		SourceURI: sourceURI,
	})
	if err != nil {
		writeDomainError(w, log, err)
		return
	}

	h.archive(r, a, body)
	h.save(r, a)
	h.remember(key, a)

	w.Header().Set(CacheHeader, "MISS")
	middleware.WriteJSON(w, http.StatusOK, a)
}

// withSourceURI reports a reused assessment under the caller's source_uri.
// The shared cached value is never modified.
func withSourceURI(a *domain.Assessment, uri string) *domain.Assessment {
	if uri == "" || uri == a.SourceURI {
		return a
	}
	cp := *a
	cp.SourceURI = uri
	return &cp
}

// findExisting returns a stored assessment of the same document, if any.
func (h *AssessmentsHandler) findExisting(r *http.Request, checksum string, strategy domain.Strategy) *domain.Assessment {
	if h.repo == nil {
		return nil
	}
	ctx, cancel := withTimeout(r.Context(), h.timeout)
	defer cancel()

	a, err := h.repo.FindByChecksum(ctx, checksum, strategy)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log := logger.FromContext(ctx)
			log.Warn().Err(err).Str("checksum", checksum).Msg("Failed to look up stored assessment")
		}
		return nil
	}
	return a
}

func (h *AssessmentsHandler) archive(r *http.Request, a *domain.Assessment, body []byte) {
	if h.archiver == nil || h.bucket == "" {
		return
	}
	ctx, cancel := withTimeout(r.Context(), h.timeout)
	defer cancel()

	uri, err := h.archiver.ArchiveStatement(ctx, h.bucket, a.Checksum, body)
	if err != nil {
		log := logger.FromContext(ctx)
		log.Warn().Err(err).Str("assessment_id", a.ID).Msg("Failed to archive statement")
		return
	}
	if a.SourceURI == "" {
		a.SourceURI = uri
	}
}

func (h *AssessmentsHandler) save(r *http.Request, a *domain.Assessment) {
	if h.repo == nil {
		return
	}
	ctx, cancel := withTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.repo.Save(ctx, a); err != nil {
		log := logger.FromContext(ctx)
		log.Error().Err(err).Str("assessment_id", a.ID).Msg("Failed to save assessment")
	}
}

func (h *AssessmentsHandler) remember(key string, a *domain.Assessment) {
	if h.cache != nil {
		h.cache.Set(key, a)
	}
}

// ListAssessments handles GET /api/assessments
func (h *AssessmentsHandler) ListAssessments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	if h.repo == nil {
		writeDomainError(w, log, store.ErrStoreDisabled)
		return
	}
	limit, err := queryInt(r, "limit", store.DefaultListLimit)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}

	assessments, err := h.repo.List(ctx, limit)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"assessments": assessments,
		"count":       len(assessments),
	})
}

// GetAssessment handles GET /api/assessments/{id}
func (h *AssessmentsHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	if h.repo == nil {
		writeDomainError(w, log, store.ErrStoreDisabled)
		return
	}

	a, err := h.repo.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, log, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, a)
}

// EnqueueAssessment handles POST /api/assessments/jobs
func (h *AssessmentsHandler) EnqueueAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	if h.publisher == nil {
		middleware.WriteError(w, http.StatusServiceUnavailable, "background jobs are not configured")
		return
	}
	strategy, err := parseStrategy(r)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}

	jobID, err := h.publisher.PublishAssess(ctx, &jobs.AssessJob{
		Strategy:  strategy,
		Document:  body,
		SourceURI: r.URL.Query().Get("source_uri"),
	})
	if err != nil {
		log.Warn().Err(err).Str("job_id", jobID).Msg("Failed to enqueue assessment")
		writeDomainError(w, log, err)
		return
	}

	h.log.Info().Str("job_id", jobID).Str("strategy", string(strategy)).Msg("Assessment job enqueued")
	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id": jobID,
		"status": string(jobs.JobStatusPending),
	})
}
