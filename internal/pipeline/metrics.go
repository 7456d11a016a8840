package pipeline

import (
	"math"
	"sort"

	"github.com/vannoorsab/FINAI/internal/domain"
)

// assumedPeriodDays is the statement window used for frequencies. It is fixed
// rather than derived from the actual date span.
const assumedPeriodDays = 30

// ComputeMetrics reduces categorized transactions and the account summary to
// FinancialMetrics. Means and deviations over empty sets are 0, and so is any
// total that overflows float64.
func ComputeMetrics(txs []domain.Transaction, summary domain.AccountSummary) domain.FinancialMetrics {
	m := domain.FinancialMetrics{
		TotalTransactions: len(txs),
		OpeningBalance:    summary.OpeningBalance,
		ClosingBalance:    summary.ClosingBalance,
	}

	balances := make([]float64, 0, len(txs))
	var creditSum float64
	for _, tx := range txs {
		m.TotalCredits += tx.Credit
		m.TotalDebits += tx.Debit
		balances = append(balances, tx.Balance)

		if tx.Debit > 0 {
			m.DebitCount++
			m.AvgTransactionSize += tx.Debit
		}
		if tx.Credit > 0 {
			m.CreditCount++
			creditSum += tx.Credit
		}
		if tx.Category == domain.CategoryBusinessIncome {
			m.AvgMonthlyIncome += tx.Credit
		}
		if tx.Category.IsExpense() {
			m.AvgMonthlyExpense += tx.Debit
		}
	}

	m.NetCashflow = m.TotalCredits - m.TotalDebits
	m.AvgBalance = mean(balances)
	m.BalanceVolatility = sampleStdDev(balances)
	m.TransactionFrequency = float64(len(txs)) / assumedPeriodDays
	m.CreditFrequency = float64(m.CreditCount) / float64(max(len(txs), 1))

	if m.DebitCount > 0 {
		m.AvgTransactionSize /= float64(m.DebitCount)
	}
	if m.CreditCount > 0 {
		m.AvgCreditAmount = creditSum / float64(m.CreditCount)
	}

	for _, v := range []*float64{
		&m.TotalCredits, &m.TotalDebits, &m.NetCashflow, &m.AvgBalance,
		&m.BalanceVolatility, &m.AvgTransactionSize, &m.AvgCreditAmount,
		&m.AvgMonthlyIncome, &m.AvgMonthlyExpense,
	} {
		*v = finite(*v)
	}
	return m
}

// ComputeAggregates builds the chartable series for a statement.
func ComputeAggregates(txs []domain.Transaction) domain.Aggregates {
	agg := domain.Aggregates{
		SpendByCategory:  make(map[domain.Category]float64),
		IncomeByCategory: make(map[domain.Category]float64),
	}

	for _, tx := range txs {
		agg.SpendByCategory[tx.Category] += tx.Debit
		agg.IncomeByCategory[tx.Category] += tx.Credit
		if tx.Category == domain.CategoryBusinessIncome {
			agg.IncomeVsExpense.Income += tx.Credit
		}
		if tx.Category.IsExpense() {
			agg.IncomeVsExpense.Expenses += tx.Debit
		}
	}

	byDate := make([]domain.Transaction, len(txs))
	copy(byDate, txs)
	sort.SliceStable(byDate, func(i, j int) bool { return byDate[i].Date.Before(byDate[j].Date) })

	// One point per day holding that day's last reported balance.
	for _, tx := range byDate {
		n := len(agg.BalanceSeries)
		if n > 0 && agg.BalanceSeries[n-1].Date == tx.Date {
			agg.BalanceSeries[n-1].Balance = tx.Balance
			continue
		}
		agg.BalanceSeries = append(agg.BalanceSeries, domain.BalancePoint{Date: tx.Date, Balance: tx.Balance})
	}

	for c, v := range agg.SpendByCategory {
		agg.SpendByCategory[c] = finite(v)
	}
	for c, v := range agg.IncomeByCategory {
		agg.IncomeByCategory[c] = finite(v)
	}
	agg.IncomeVsExpense.Income = finite(agg.IncomeVsExpense.Income)
	agg.IncomeVsExpense.Expenses = finite(agg.IncomeVsExpense.Expenses)

	agg.Transactions = make([]domain.Transaction, len(byDate))
	for i, tx := range byDate {
		agg.Transactions[len(byDate)-1-i] = tx
	}
	return agg
}

// finite maps overflowed sums and the NaN they produce to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStdDev uses the n-1 denominator and is 0 below two samples.
func sampleStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mu := mean(xs)
	var ss float64
	for _, x := range xs {
		ss += (x - mu) * (x - mu)
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
