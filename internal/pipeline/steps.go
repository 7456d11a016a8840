package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/vannoorsab/FINAI/internal/domain"
	"github.com/vannoorsab/FINAI/internal/scoring"
)

// PipelineStep represents a single step in the assessment pipeline.
type PipelineStep interface {
	Execute(ctx context.Context, state *PipelineState) error
}

// PipelineState holds the shared state across all pipeline steps.
type PipelineState struct {
	SourceURI string
	Document  []byte

	Statement      *domain.Statement
	Profile        domain.Profile
	Summary        domain.AccountSummary
	Transactions   []domain.Transaction
	Loans          *domain.LoanInsights
	Metrics        domain.FinancialMetrics
	Aggregates     domain.Aggregates
	Score          domain.ScoreBreakdown
	Recommendation domain.Recommendation
}

// FetchStatementStep loads the document from SourceURI when none was supplied.
type FetchStatementStep struct {
	Fetcher StatementFetcher
}

func (s *FetchStatementStep) Execute(ctx context.Context, state *PipelineState) error {
	if state.Document != nil {
		return nil
	}
	if s.Fetcher == nil || state.SourceURI == "" {
		return errors.New("FetchStatementStep: no document and no source to fetch from")
	}
	data, err := s.Fetcher.FetchStatement(ctx, state.SourceURI)
	if err != nil {
		return fmt.Errorf("FetchStatementStep: %w", err)
	}
	state.Document = data
	return nil
}

// DecodeStatementStep parses the JSON document, its profile and its summary.
type DecodeStatementStep struct{}

func (s *DecodeStatementStep) Execute(ctx context.Context, state *PipelineState) error {
	stmt, err := domain.DecodeStatement(state.Document)
	if err != nil {
		return err
	}
	summary, err := stmt.AccountSummary()
	if err != nil {
		return err
	}
	state.Statement = stmt
	state.Profile = stmt.Profile()
	state.Summary = summary
	return nil
}

// NormalizeStep converts raw rows into typed transactions.
type NormalizeStep struct{}

func (s *NormalizeStep) Execute(ctx context.Context, state *PipelineState) error {
	txs, err := Normalize(state.Statement.Transactions)
	if err != nil {
		return err
	}
	state.Transactions = txs
	return nil
}

// CategorizeStep labels every transaction with Rules.
type CategorizeStep struct {
	Rules RuleSet
}

func (s *CategorizeStep) Execute(ctx context.Context, state *PipelineState) error {
	state.Transactions = s.Rules.Apply(state.Transactions)
	return nil
}

// DetectLoansStep extracts loan receipts and repayments.
type DetectLoansStep struct{}

func (s *DetectLoansStep) Execute(ctx context.Context, state *PipelineState) error {
	state.Loans = DetectLoans(state.Transactions)
	return nil
}

// MetricsStep computes metrics and chart aggregates.
type MetricsStep struct{}

func (s *MetricsStep) Execute(ctx context.Context, state *PipelineState) error {
	state.Metrics = ComputeMetrics(state.Transactions, state.Summary)
	state.Aggregates = ComputeAggregates(state.Transactions)
	return nil
}

// ScoreStep applies one scoring strategy.
type ScoreStep struct {
	Scorer scoring.Scorer
}

func (s *ScoreStep) Execute(ctx context.Context, state *PipelineState) error {
	state.Score = s.Scorer.Score(scoring.Input{
		Metrics:      state.Metrics,
		Loans:        state.Loans,
		Transactions: state.Transactions,
	})
	return nil
}

// RecommendStep maps the total score to loan guidance.
type RecommendStep struct{}

func (s *RecommendStep) Execute(ctx context.Context, state *PipelineState) error {
	state.Recommendation = scoring.Recommend(state.Score.Total)
	return nil
}

// Pipeline executes a sequence of steps in order.
type Pipeline struct {
	steps []PipelineStep
}

// NewPipeline creates a new pipeline with the given steps.
func NewPipeline(steps ...PipelineStep) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps in the pipeline sequentially. It stops at the first
// failure or when ctx is done.
func (p *Pipeline) Execute(ctx context.Context, state *PipelineState) error {
	for i, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step.Execute(ctx, state); err != nil {
			return fmt.Errorf("pipeline step %d failed: %w", i+1, err)
		}
	}
	return nil
}

// NewAssessmentPipeline creates the standard pipeline for one strategy.
// fetcher may be nil when documents are always supplied inline.
func NewAssessmentPipeline(strategy domain.Strategy, fetcher StatementFetcher) (*Pipeline, error) {
	scorer, err := scoring.New(strategy)
	if err != nil {
		return nil, err
	}
	return NewPipeline(
		&FetchStatementStep{Fetcher: fetcher},
		&DecodeStatementStep{},
		&NormalizeStep{},
		&CategorizeStep{Rules: RulesFor(strategy)},
		&DetectLoansStep{},
		&MetricsStep{},
		&ScoreStep{Scorer: scorer},
		&RecommendStep{},
	), nil
}
