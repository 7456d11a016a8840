package marketplace

import (
	"context"
	"fmt"

	"github.com/vannoorsab/FINAI/internal/ai"
	"github.com/vannoorsab/FINAI/internal/domain"
	"github.com/vannoorsab/FINAI/internal/logger"
	"github.com/vannoorsab/FINAI/internal/scoring"
)

const additionalLoansPrompt = `Generate a JSON object containing additional business loan types with this exact structure:
{
  "additional_loans": [
    {
      "name": "Equipment Financing Loan",
      "provider": "Tech Finance Ltd",
      "type": "Equipment Loan",
      "interest_rate": 11.5,
      "min_amount": 100000,
      "max_amount": 1000000,
      "tenure_range": {"min_months": 12, "max_months": 48},
      "processing_time": "3-5 days",
      "processing_fee": 1.0,
      "suitable_for": ["Manufacturing", "Tech Companies"],
      "required_documents": ["Business Registration", "Equipment Quotation"],
      "features": ["Quick Processing", "Flexible Terms"],
      "upgrade_criteria": {
        "min_credit_score": 70,
        "min_repayment_history": 6,
        "interest_reduction": 1.5
      }
    }
  ]
}

Generate 5 more loan types following exactly this structure.
Return ONLY valid raw JSON. Do NOT wrap the response in code fences.`

// Offer is one catalog loan evaluated for a borrower.
type Offer struct {
	Category string `json:"category"`
	Loan     Loan   `json:"loan"`
	Eligible bool   `json:"eligible"`
	// Upgrade is only computed for eligible offers.
	Upgrade *Upgrade `json:"upgrade,omitempty"`
}

// Result is the marketplace view of one statement.
type Result struct {
	Score           domain.ScoreBreakdown `json:"credit_score"`
	Tips            []string              `json:"improvement_tips"`
	MonthlyIncome   float64               `json:"monthly_income"`
	Categories      []string              `json:"categories"`
	Offers          []Offer               `json:"offers"`
	AdditionalLoans domain.FeatureStatus  `json:"additional_loans_status"`
}

// Service evaluates statements against the loan catalog.
type Service struct {
	generator ai.TextGenerator
}

// NewService creates a Service. A nil generator disables model-generated loans.
func NewService(generator ai.TextGenerator) *Service {
	return &Service{generator: generator}
}

// Evaluate scores txs with the marketplace credit formula and lists the
// catalog offers that pass filter.
func (s *Service) Evaluate(ctx context.Context, txs []domain.Transaction, filter Filter) (*Result, error) {
	additional, status := s.additionalLoans(ctx)
	catalog := append(BaseCatalog(), Section{Category: CategoryAdditional, Loans: additional})

	if err := filter.Validate(catalog); err != nil {
		return nil, err
	}

	score := scoring.MarketplaceCredit{}.Score(scoring.Input{Transactions: txs})
	income := MonthlyIncome(txs)

	result := &Result{
		Score:           score,
		Tips:            scoring.ImprovementTips(score),
		MonthlyIncome:   income,
		Categories:      catalog.Categories(),
		Offers:          []Offer{},
		AdditionalLoans: status,
	}

	for _, section := range catalog {
		for _, loan := range section.Loans {
			if !filter.Matches(section.Category, loan) {
				continue
			}
			offer := Offer{
				Category: section.Category,
				Loan:     loan,
				Eligible: Eligible(loan, score.Total, income),
			}
			if offer.Eligible {
				u := UpgradeFor(loan, score.Total, income)
				offer.Upgrade = &u
			}
			result.Offers = append(result.Offers, offer)
		}
	}

	log := logger.FromContext(ctx)
	log.Info().
		Float64("credit_score", score.Total).
		Int("offers", len(result.Offers)).
		Str("additional_loans", string(status)).
		Msg("Marketplace evaluated")

	return result, nil
}

// additionalLoans asks the model for extra products. Any failure yields an
// empty list.
func (s *Service) additionalLoans(ctx context.Context) ([]Loan, domain.FeatureStatus) {
	if s.generator == nil {
		return []Loan{}, domain.StatusUnavailable
	}

	log := logger.FromContext(ctx)
	loans, err := s.fetchAdditionalLoans(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Additional loan types unavailable, using base catalog")
		return []Loan{}, domain.StatusFallback
	}
	return loans, domain.StatusOK
}

func (s *Service) fetchAdditionalLoans(ctx context.Context) ([]Loan, error) {
	text, err := s.generator.Generate(ctx, additionalLoansPrompt)
	if err != nil {
		return nil, err
	}

	var payload struct {
		AdditionalLoans *[]Loan `json:"additional_loans"`
	}
	if err := ai.DecodeJSON(text, &payload); err != nil {
		return nil, fmt.Errorf("fetchAdditionalLoans: %w", err)
	}
	if payload.AdditionalLoans == nil {
		return nil, fmt.Errorf("fetchAdditionalLoans: response has no additional_loans key")
	}

	loans := make([]Loan, 0, len(*payload.AdditionalLoans))
	for _, l := range *payload.AdditionalLoans {
		if l.Name == "" || l.InterestRate <= 0 {
			continue
		}
		loans = append(loans, l)
	}
	return loans, nil
}
