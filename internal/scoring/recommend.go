package scoring

import "github.com/vannoorsab/FINAI/internal/domain"

// Recommend maps a total score to a loan tier. Thresholds are strict:
// exactly 80 is growth and exactly 60 is limited.
func Recommend(score float64) domain.Recommendation {
	switch {
	case score > 80:
		return domain.Recommendation{
			Tier:      domain.TierPriority,
			Headline:  "High Potential Loan Recommendation",
			Product:   "Eligible for Priority Business Loan",
			MaxAmount: 500000,
		}
	case score > 60:
		return domain.Recommendation{
			Tier:      domain.TierGrowth,
			Headline:  "Moderate Potential Loan",
			Product:   "Eligible for Business Growth Loan",
			MaxAmount: 250000,
		}
	default:
		return domain.Recommendation{
			Tier:     domain.TierLimited,
			Headline: "Limited Loan Options",
			Product:  "Recommended: Microfinance or Secured Loan",
			Advice:   "Consider Building Financial History",
		}
	}
}
