package marketplace

import (
	"math"

	"github.com/vannoorsab/FINAI/internal/domain"
)

const (
	// MinEligibleScore is the credit score every offer requires.
	MinEligibleScore = 60
	// incomeToMinAmount is how much of a loan's minimum the monthly income must exceed.
	incomeToMinAmount = 0.1
	// FloorInterestRate bounds upgraded rates from below.
	FloorInterestRate = 5.0
	// UpgradeLockedMessage is shown when an eligible offer cannot be upgraded yet.
	UpgradeLockedMessage = "Complete 6 months of timely repayments to unlock upgrades"
)

// Upgrade describes better terms available on an offer.
type Upgrade struct {
	Eligible          bool    `json:"eligible"`
	NewInterestRate   float64 `json:"new_interest_rate"`
	MaxAmountIncrease float64 `json:"max_amount_increase"`
	Message           string  `json:"message,omitempty"`
}

// MonthlyIncome is the mean credit across all transactions, including rows
// with no credit. It is 0 for an empty statement or when the credits
// overflow float64.
func MonthlyIncome(txs []domain.Transaction) float64 {
	if len(txs) == 0 {
		return 0
	}
	var sum float64
	for _, tx := range txs {
		sum += tx.Credit
	}
	if math.IsInf(sum, 0) || math.IsNaN(sum) {
		return 0
	}
	return sum / float64(len(txs))
}

// Eligible reports whether a borrower with score and income qualifies for loan.
func Eligible(loan Loan, score, income float64) bool {
	return score >= MinEligibleScore && income > loan.MinAmount*incomeToMinAmount
}

// UpgradeFor computes upgrade terms for loan.
func UpgradeFor(loan Loan, score, income float64) Upgrade {
	eligible := score >= loan.Upgrade.MinCreditScore && income > loan.MinAmount*incomeToMinAmount

	u := Upgrade{
		Eligible:        eligible,
		NewInterestRate: math.Max(FloorInterestRate, loan.InterestRate-loan.Upgrade.InterestReduction),
	}
	if eligible {
		u.MaxAmountIncrease = math.Min(income*12, math.MaxFloat64)
	} else {
		u.Message = UpgradeLockedMessage
	}
	return u
}
