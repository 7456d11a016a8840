package domain

import "cloud.google.com/go/civil"

// FinancialMetrics is the scalar summary of one statement. It is recomputed
// from scratch on every run.
type FinancialMetrics struct {
	TotalTransactions    int     `json:"total_transactions"`
	DebitCount           int     `json:"debit_count"`
	CreditCount          int     `json:"credit_count"`
	TotalCredits         float64 `json:"total_credits"`
	TotalDebits          float64 `json:"total_debits"`
	NetCashflow          float64 `json:"net_cashflow"`
	OpeningBalance       float64 `json:"opening_balance"`
	ClosingBalance       float64 `json:"closing_balance"`
	AvgBalance           float64 `json:"avg_balance"`
	BalanceVolatility    float64 `json:"balance_volatility"`
	AvgTransactionSize   float64 `json:"avg_transaction_size"`
	TransactionFrequency float64 `json:"transaction_frequency"`
	CreditFrequency      float64 `json:"credit_frequency"`
	AvgCreditAmount      float64 `json:"avg_credit_amount"`
	AvgMonthlyIncome     float64 `json:"avg_monthly_income"`
	AvgMonthlyExpense    float64 `json:"avg_monthly_expense"`
}

// HasVolatility reports whether BalanceVolatility was measured. A sample
// deviation needs at least two balances.
func (m FinancialMetrics) HasVolatility() bool { return m.TotalTransactions >= 2 }

// HasAvgTransactionSize reports whether AvgTransactionSize was measured,
// that is whether the statement has any debit.
func (m FinancialMetrics) HasAvgTransactionSize() bool { return m.DebitCount > 0 }

// LoanInsights summarizes loan receipts and repayments found in a statement.
type LoanInsights struct {
	TotalLoanAmount     float64      `json:"total_loan_amount"`
	TotalRepaid         float64      `json:"total_repaid"`
	LoanReceiptDates    []civil.Date `json:"loan_receipt_dates"`
	RepaymentDates      []civil.Date `json:"repayment_dates"`
	RepaymentCount      int          `json:"repayment_count"`
	RepaymentAmounts    []float64    `json:"repayment_amounts"`
	RepaymentPercentage float64      `json:"repayment_percentage"`
	// InterestRate is (repaid/borrowed - 1) * 100. It ignores elapsed time
	// and goes negative while a loan is still being repaid.
	InterestRate float64 `json:"interest_rate"`
}

// BalancePoint is one entry of the balance time series.
type BalancePoint struct {
	Date    civil.Date `json:"date"`
	Balance float64    `json:"balance"`
}

// IncomeVsExpense compares business income with business and personal spend.
type IncomeVsExpense struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// Aggregates are the series a dashboard would chart.
type Aggregates struct {
	SpendByCategory  map[Category]float64 `json:"spend_by_category"`
	IncomeByCategory map[Category]float64 `json:"income_by_category"`
	IncomeVsExpense  IncomeVsExpense      `json:"income_vs_expense"`
	BalanceSeries    []BalancePoint       `json:"balance_series"`
	// Transactions is the detailed table, newest first.
	Transactions []Transaction `json:"transactions"`
}
