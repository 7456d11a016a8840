package scoring

import (
	"math"

	"github.com/vannoorsab/FINAI/internal/domain"
)

// Loan-worthiness component names not shared with the nano strategy.
const (
	ExpenseManagement = "Expense Management"
	LoanReliability   = "Loan Reliability"
)

// LoanWorthiness weighs income, spending control, repayment history and
// growth as fractions of 1, reported on a 0-100 scale.
type LoanWorthiness struct{}

func (LoanWorthiness) Strategy() domain.Strategy { return domain.StrategyLoan }

func (LoanWorthiness) Score(in Input) domain.ScoreBreakdown {
	m := in.Metrics

	incomeStability := math.Min(
		indicator(m.AvgMonthlyIncome > 20000)*0.3+
			indicator(m.NetCashflow > 0)*0.2,
		0.5)

	expenseManagement := math.Min(
		indicator(m.TotalDebits < m.TotalCredits)*0.2+
			indicator(m.HasVolatility() && m.BalanceVolatility < m.AvgBalance*0.3)*0.1,
		0.3)

	// Zero when the statement shows no loan activity.
	var reliability float64
	if in.Loans != nil {
		reliability = math.Min(
			indicator(in.Loans.RepaymentPercentage > 80)*0.15+
				indicator(in.Loans.RepaymentCount > 3)*0.05,
			0.2)
	}

	growth := math.Min(
		indicator(m.ClosingBalance > m.OpeningBalance)*0.1+
			indicator(m.NetCashflow > 0)*0.1,
		0.2)

	total := incomeStability + expenseManagement + reliability + growth

	return domain.ScoreBreakdown{
		Strategy: domain.StrategyLoan,
		Total:    clamp(total*100, 0, 100),
		Components: []domain.Component{
			{Name: IncomeStability, Value: incomeStability * 100, Max: 50},
			{Name: ExpenseManagement, Value: expenseManagement * 100, Max: 30},
			{Name: LoanReliability, Value: reliability * 100, Max: 20},
			{Name: GrowthPotential, Value: growth * 100, Max: 20},
		},
	}
}
