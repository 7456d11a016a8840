// Package scoring turns financial metrics into bounded 0-100 scores.
//
// Each formula is a named Scorer strategy; callers pick one explicitly.
// Indicator terms are evaluated as exactly 1 or 0 and multiplied by their
// weight, so a component only ever takes a small set of discrete values.
package scoring

import (
	"fmt"
	"math"

	"github.com/vannoorsab/FINAI/internal/domain"
)

// Input is everything a strategy may look at.
type Input struct {
	Metrics domain.FinancialMetrics
	// Loans is nil when no loan receipts or repayments were detected.
	Loans        *domain.LoanInsights
	Transactions []domain.Transaction
}

// Scorer computes a score breakdown for one strategy.
type Scorer interface {
	Strategy() domain.Strategy
	Score(in Input) domain.ScoreBreakdown
}

// New returns the scorer for the named strategy.
func New(strategy domain.Strategy) (Scorer, error) {
	switch strategy {
	case domain.StrategyNano:
		return NanoEntrepreneur{}, nil
	case domain.StrategyLoan:
		return LoanWorthiness{}, nil
	case domain.StrategyCredit:
		return MarketplaceCredit{}, nil
	default:
		return nil, fmt.Errorf("scoring.New: %w %q", domain.ErrUnknownStrategy, strategy)
	}
}

// indicator is 1 when cond holds. Comparisons on statistics a statement
// cannot define (see FinancialMetrics.HasVolatility) must be false.
func indicator(cond bool) float64 {
	if cond {
		return 1
	}
	return 0
}

// clamp bounds v to [lo, hi]. NaN maps to 0.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(math.Max(v, lo), hi)
}

func sumComponents(components []domain.Component) float64 {
	var total float64
	for _, c := range components {
		total += c.Value
	}
	return total
}
