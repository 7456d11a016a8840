// Package pipeline turns a raw bank-statement document into a scored
// assessment: normalize, categorize, detect loans, aggregate, score and
// recommend, each as a PipelineStep.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/vannoorsab/FINAI/internal/domain"
	"github.com/vannoorsab/FINAI/internal/logger"
)

// Request describes one assessment run. Either Document or SourceURI must be set.
type Request struct {
	Strategy  domain.Strategy
	Document  []byte
	SourceURI string
}

// Assessor runs assessment pipelines.
type Assessor struct {
	fetcher StatementFetcher
	now     func() time.Time
}

// NewAssessor creates an Assessor. fetcher may be nil.
func NewAssessor(fetcher StatementFetcher) *Assessor {
	return &Assessor{fetcher: fetcher, now: time.Now}
}

// Assess runs the pipeline for req and returns the full assessment. No partial
// result is returned on failure.
func (a *Assessor) Assess(ctx context.Context, req Request) (*domain.Assessment, error) {
	log := logger.FromContext(ctx)

	p, err := NewAssessmentPipeline(req.Strategy, a.fetcher)
	if err != nil {
		return nil, err
	}

	state := &PipelineState{SourceURI: req.SourceURI, Document: req.Document}
	if err := p.Execute(ctx, state); err != nil {
		log.Warn().Err(err).Str("strategy", string(req.Strategy)).Msg("Assessment failed")
		return nil, err
	}

	assessment := &domain.Assessment{
		ID:             uuid.NewString(),
		Strategy:       req.Strategy,
		Checksum:       Checksum(state.Document),
		SourceURI:      req.SourceURI,
		Profile:        state.Profile,
		Summary:        state.Summary,
		Metrics:        state.Metrics,
		Score:          state.Score,
		Recommendation: state.Recommendation,
		Loans:          state.Loans,
		Aggregates:     &state.Aggregates,
		CreatedAt:      a.now().UTC(),
	}

	log.Info().
		Str("assessment_id", assessment.ID).
		Str("strategy", string(assessment.Strategy)).
		Int("transactions", assessment.Metrics.TotalTransactions).
		Float64("score", assessment.Score.Total).
		Str("tier", string(assessment.Recommendation.Tier)).
		Msg("Assessment completed")

	return assessment, nil
}

// Transactions decodes, normalizes and categorizes a document without scoring
// it. Marketplace and insight features work from this view.
func Transactions(doc []byte, rules RuleSet) (*domain.Statement, []domain.Transaction, error) {
	state := &PipelineState{Document: doc}
	p := NewPipeline(&DecodeStatementStep{}, &NormalizeStep{}, &CategorizeStep{Rules: rules})
	if err := p.Execute(context.Background(), state); err != nil {
		return nil, nil, err
	}
	return state.Statement, state.Transactions, nil
}

// Checksum is the hex SHA-256 of a statement document. It identifies the
// document in caches, stores and the archive.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
