// Package handlers implements the HTTP endpoints of the assessment service.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/vannoorsab/FINAI/internal/api/middleware"
	"github.com/vannoorsab/FINAI/internal/domain"
	"github.com/vannoorsab/FINAI/internal/jobs"
	"github.com/vannoorsab/FINAI/internal/pipeline"
	"github.com/vannoorsab/FINAI/internal/store"
)

// Assessor runs the assessment pipeline.
type Assessor interface {
	Assess(ctx context.Context, req pipeline.Request) (*domain.Assessment, error)
}

// StatementArchiver keeps a copy of each raw statement.
type StatementArchiver interface {
	ArchiveStatement(ctx context.Context, bucket, checksum string, data []byte) (string, error)
}

// readBody reads the whole request body. An empty body is malformed input.
func readBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, &domain.MalformedInputError{Index: -1, Field: "body", Reason: "request body is empty"}
	}
	return data, nil
}

// writeDomainError maps service errors to HTTP statuses. Unexpected errors
// are logged and reported without detail.
func writeDomainError(w http.ResponseWriter, log zerolog.Logger, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		middleware.WriteError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
	case domain.IsMalformedInput(err), domain.IsValidationError(err), errors.Is(err, domain.ErrUnknownStrategy):
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrStoreDisabled):
		middleware.WriteError(w, http.StatusServiceUnavailable, "assessment store is not configured")
	case errors.Is(err, jobs.ErrQueueFull), errors.Is(err, jobs.ErrQueueClosed):
		middleware.WriteError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		middleware.WriteError(w, http.StatusGatewayTimeout, "request timed out")
	default:
		log.Error().Err(err).Msg("Request failed")
		middleware.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseStrategy reads ?strategy=, defaulting to the nano score.
func parseStrategy(r *http.Request) (domain.Strategy, error) {
	raw := r.URL.Query().Get("strategy")
	if raw == "" {
		return domain.StrategyNano, nil
	}
	s := domain.Strategy(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, raw)
	}
	return s, nil
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, domain.NewValidationError("invalid %s %q: must be a non-negative integer", name, raw)
	}
	return v, nil
}

// withTimeout bounds ctx when d is positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
