package insights

import (
	"fmt"
	"strings"

	"github.com/vannoorsab/FINAI/internal/domain"
	"github.com/vannoorsab/FINAI/internal/scoring"
)

// insightPrompt builds the analysis request. ok is false when the statement
// has no credit or no debit to cite.
func insightPrompt(txs []domain.Transaction, m domain.FinancialMetrics, breakdown domain.ScoreBreakdown) (string, bool) {
	top, worst, ok := extremes(txs)
	if !ok {
		return "", false
	}

	var b strings.Builder
	b.WriteString("Analyze the financial data for a nano entrepreneur with the following details:\n\n")

	b.WriteString("Financial Metrics:\n")
	fmt.Fprintf(&b, "- Total Transactions: %d\n", m.TotalTransactions)
	fmt.Fprintf(&b, "- Total Credits: ₹%.2f\n", m.TotalCredits)
	fmt.Fprintf(&b, "- Total Debits: ₹%.2f\n", m.TotalDebits)
	fmt.Fprintf(&b, "- Net Cashflow: ₹%.2f\n\n", m.NetCashflow)

	fmt.Fprintf(&b, "Nano Entrepreneur Score: %.2f/100\n", breakdown.Total)
	b.WriteString("Score Breakdown:\n")
	for _, name := range []string{scoring.IncomeStability, scoring.BusinessResilience, scoring.TransactionDiscipline, scoring.GrowthPotential} {
		v, _ := breakdown.Component(name)
		fmt.Fprintf(&b, "- %s: %.2f\n", name, v)
	}

	b.WriteString("\nTop Credit Transaction:\n")
	fmt.Fprintf(&b, "- Date: %s\n- Amount: ₹%.2f\n- Description: %s\n", top.Date, top.Credit, top.Description)

	b.WriteString("\nWorst Transaction:\n")
	fmt.Fprintf(&b, "- Date: %s\n- Amount: ₹%.2f\n- Description: %s\n", worst.Date, worst.Debit, worst.Description)

	return b.String(), true
}

// extremes returns the largest credit and the largest debit. Ties keep the
// earliest row.
func extremes(txs []domain.Transaction) (top, worst domain.Transaction, ok bool) {
	var haveCredit, haveDebit bool
	for _, tx := range txs {
		if tx.Credit > 0 && (!haveCredit || tx.Credit > top.Credit) {
			top, haveCredit = tx, true
		}
		if tx.Debit > 0 && (!haveDebit || tx.Debit > worst.Debit) {
			worst, haveDebit = tx, true
		}
	}
	return top, worst, haveCredit && haveDebit
}

func localizedTipsPrompt(language string, score *float64) string {
	scoreText := "Not specified"
	if score != nil {
		scoreText = fmt.Sprintf("%.0f", *score)
	}

	return fmt.Sprintf(`Generate comprehensive, actionable credit score improvement tips
in %s language. Provide:
- 5-7 specific strategies
- Detailed explanation for each strategy
- Potential impact on credit score
- Practical implementation steps

Context:
- Current language: %s
- Current credit score: %s
`, language, language, scoreText)
}
