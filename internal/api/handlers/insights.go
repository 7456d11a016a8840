package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/vannoorsab/FINAI/internal/api/middleware"
	"github.com/vannoorsab/FINAI/internal/domain"
	"github.com/vannoorsab/FINAI/internal/insights"
	"github.com/vannoorsab/FINAI/internal/logger"
	"github.com/vannoorsab/FINAI/internal/pipeline"
)

// InsightsAnalyzer produces the insight report for an assessed statement.
type InsightsAnalyzer interface {
	Analyze(ctx context.Context, txs []domain.Transaction, a *domain.Assessment, language string) (*insights.Report, error)
}

// InsightsResponse is the body of POST /api/insights.
type InsightsResponse struct {
	Score domain.ScoreBreakdown `json:"score"`
	*insights.Report
}

// InsightsHandler handles the insights endpoint.
type InsightsHandler struct {
	assessor Assessor
	analyzer InsightsAnalyzer
	timeout  time.Duration
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(assessor Assessor, analyzer InsightsAnalyzer, timeout time.Duration) *InsightsHandler {
	return &InsightsHandler{assessor: assessor, analyzer: analyzer, timeout: timeout}
}

// Analyze handles POST /api/insights
func (h *InsightsHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	language := r.URL.Query().Get("language")
	if language == "" {
		language = insights.DefaultLanguage
	}
	if err := insights.ValidateLanguage(language); err != nil {
		writeDomainError(w, log, err)
		return
	}

	body, err := readBody(r)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}

	a, err := h.assessor.Assess(ctx, pipeline.Request{Strategy: domain.StrategyNano, Document: body})
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

	report, err := h.analyzer.Analyze(ctx, txs, a, language)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, InsightsResponse{Score: a.Score, Report: report})
}
