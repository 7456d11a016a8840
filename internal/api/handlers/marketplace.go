package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/vannoorsab/FINAI/internal/api/middleware"
	"github.com/vannoorsab/FINAI/internal/domain"
	"github.com/vannoorsab/FINAI/internal/logger"
	"github.com/vannoorsab/FINAI/internal/marketplace"
	"github.com/vannoorsab/FINAI/internal/pipeline"
)

// MarketplaceEvaluator matches a statement against loan offers.
type MarketplaceEvaluator interface {
	Evaluate(ctx context.Context, txs []domain.Transaction, filter marketplace.Filter) (*marketplace.Result, error)
}

// MarketplaceHandler handles the loan marketplace endpoint.
type MarketplaceHandler struct {
	evaluator MarketplaceEvaluator
	timeout   time.Duration
}

// NewMarketplaceHandler creates a new marketplace handler. timeout bounds
// the model call for additional loans.
func NewMarketplaceHandler(evaluator MarketplaceEvaluator, timeout time.Duration) *MarketplaceHandler {
	return &MarketplaceHandler{evaluator: evaluator, timeout: timeout}
}

// Evaluate handles POST /api/marketplace
func (h *MarketplaceHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	filter, err := parseFilter(r)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}
	_, txs, err := pipeline.Transactions(body, pipeline.StandardRules)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}

	ctx, cancel := withTimeout(ctx, h.timeout)
	defer cancel()

	result, err := h.evaluator.Evaluate(ctx, txs, filter)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, result)
}

// parseFilter reads type, max_interest and processing. Range checks are left
// to Filter.Validate, which knows the catalog.
func parseFilter(r *http.Request) (marketplace.Filter, error) {
	q := r.URL.Query()
	filter := marketplace.DefaultFilter()

	if v := q.Get("type"); v != "" {
		filter.Category = v
	}
	if v := q.Get("processing"); v != "" {
		filter.ProcessingTime = v
	}
	if v := q.Get("max_interest"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, domain.NewValidationError("invalid max_interest %q: must be a number", v)
		}
		filter.MaxInterest = f
	}
	return filter, nil
}
