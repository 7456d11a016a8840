package scoring

import (
	"math"

	"github.com/vannoorsab/FINAI/internal/domain"
)

// Marketplace credit component names.
const (
	CreditIncomeStability = "Income Stability"
	BalanceGrowth         = "Balance Growth"
	TransactionHistory    = "Transaction History"
	PaymentRegularity     = "Payment Regularity"
)

// MarketplaceCredit is the loan marketplace's credit score. It reads the
// raw transactions rather than the aggregated metrics and truncates the
// total to a whole number.
type MarketplaceCredit struct{}

func (MarketplaceCredit) Strategy() domain.Strategy { return domain.StrategyCredit }

func (MarketplaceCredit) Score(in Input) domain.ScoreBreakdown {
	txs := in.Transactions

	var credits, debits float64
	allDebits := true
	for _, tx := range txs {
		credits += tx.Credit
		debits += tx.Debit
		if !(tx.Debit > 0) {
			allDebits = false
		}
	}

	// No debits means nothing to cover, so stability takes its cap.
	incomeStability := 30.0
	if debits > 0 {
		incomeStability = math.Min(30, credits/debits*15)
	}
	// Overflowed sums give NaN or -Inf.
	if math.IsNaN(incomeStability) || math.IsInf(incomeStability, -1) {
		incomeStability = 0
	}

	balanceGrowth := 10.0
	if trend, ok := balanceTrend(txs); ok && trend > 0 {
		balanceGrowth = 25
	}

	history := math.Min(25, float64(len(txs))/30*5)

	regularity := 10.0
	if allDebits {
		regularity = 20
	}

	components := []domain.Component{
		{Name: CreditIncomeStability, Value: incomeStability, Max: 30},
		{Name: BalanceGrowth, Value: balanceGrowth, Max: 25},
		{Name: TransactionHistory, Value: history, Max: 25},
		{Name: PaymentRegularity, Value: regularity, Max: 20},
	}

	return domain.ScoreBreakdown{
		Strategy:   domain.StrategyCredit,
		Total:      clamp(math.Trunc(sumComponents(components)), 0, 100),
		Components: components,
	}
}

// balanceTrend is the mean step-to-step balance change. It is undefined for
// fewer than two transactions.
func balanceTrend(txs []domain.Transaction) (float64, bool) {
	if len(txs) < 2 {
		return 0, false
	}
	var sum float64
	for i := 1; i < len(txs); i++ {
		sum += txs[i].Balance - txs[i-1].Balance
	}
	return sum / float64(len(txs)-1), true
}
