package pipeline

import (
	"strings"

	"github.com/vannoorsab/FINAI/internal/domain"
)

// DetectLoans finds loan receipts (credits mentioning "loan") and repayments
// (debits mentioning "repayment"). It returns nil unless both are present
// and the borrowed total fits in a float64.
func DetectLoans(txs []domain.Transaction) *domain.LoanInsights {
	insights := &domain.LoanInsights{}
	var receipts int

	for _, tx := range txs {
		desc := strings.ToLower(tx.Description)
		if strings.Contains(desc, "loan") && tx.Credit > 0 {
			receipts++
			insights.TotalLoanAmount += tx.Credit
			insights.LoanReceiptDates = append(insights.LoanReceiptDates, tx.Date)
		}
		if strings.Contains(desc, "repayment") && tx.Debit > 0 {
			insights.RepaymentCount++
			insights.TotalRepaid += tx.Debit
			insights.RepaymentDates = append(insights.RepaymentDates, tx.Date)
			insights.RepaymentAmounts = append(insights.RepaymentAmounts, tx.Debit)
		}
	}

	insights.TotalLoanAmount = finite(insights.TotalLoanAmount)
	insights.TotalRepaid = finite(insights.TotalRepaid)
	if receipts == 0 || insights.RepaymentCount == 0 || insights.TotalLoanAmount == 0 {
		return nil
	}

	ratio := insights.TotalRepaid / insights.TotalLoanAmount
	insights.RepaymentPercentage = ratio * 100
	// Kept as the naive figure statements have always reported; see LoanInsights.
	insights.InterestRate = (ratio - 1) * 100
	return insights
}
