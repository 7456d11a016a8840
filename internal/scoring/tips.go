package scoring

import "github.com/vannoorsab/FINAI/internal/domain"

// ImprovementTips suggests actions for weak marketplace credit components.
func ImprovementTips(b domain.ScoreBreakdown) []string {
	rules := []struct {
		component string
		below     float64
		tip       string
	}{
		{CreditIncomeStability, 25, "Maintain consistent income deposits to improve stability score"},
		{BalanceGrowth, 20, "Focus on maintaining positive account balance growth"},
		{TransactionHistory, 20, "Increase regular transaction activity to build history"},
		{PaymentRegularity, 15, "Ensure regular and timely bill payments"},
	}

	tips := []string{}
	for _, r := range rules {
		if v, ok := b.Component(r.component); ok && v < r.below {
			tips = append(tips, r.tip)
		}
	}
	return tips
}
