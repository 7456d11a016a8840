package insights

import (
	"fmt"
	"math"
	"strings"

	"github.com/vannoorsab/FINAI/internal/domain"
	"github.com/vannoorsab/FINAI/internal/money"
	"github.com/vannoorsab/FINAI/internal/scoring"
)

// FallbackInsight renders the built-in analysis used when the model cannot
// answer. breakdown must be a nano-entrepreneur breakdown; missing components
// read as 0.
func FallbackInsight(m domain.FinancialMetrics, breakdown domain.ScoreBreakdown) string {
	income, _ := breakdown.Component(scoring.IncomeStability)
	resilience, _ := breakdown.Component(scoring.BusinessResilience)
	discipline, _ := breakdown.Component(scoring.TransactionDiscipline)
	growth, _ := breakdown.Component(scoring.GrowthPotential)

	ratio := m.TotalCredits / math.Max(m.TotalDebits, 1)
	avgTransaction := m.TotalDebits / math.Max(float64(m.TotalTransactions), 1)

	health := "concerning"
	switch {
	case ratio > 2:
		health = "strong"
	case ratio > 1:
		health = "moderate"
	}
	direction := "negative"
	if m.NetCashflow > 0 {
		direction = "positive"
	}

	var b strings.Builder
	b.WriteString("### Financial Health Analysis\n\n")

	b.WriteString("#### Income and Expense Analysis\n")
	fmt.Fprintf(&b, "- Your income to expense ratio is %.2f, indicating %s financial health\n", ratio, health)
	fmt.Fprintf(&b, "- Average transaction size: %s\n", money.Rupees(avgTransaction))
	fmt.Fprintf(&b, "- Net cashflow: %s (%s)\n\n", money.Rupees(m.NetCashflow), direction)

	b.WriteString("#### Strengths\n")
	fmt.Fprintf(&b, "- %s\n", pick(income > 30, "Strong income stability", "Room for improving income stability"))
	fmt.Fprintf(&b, "- %s\n\n", pick(resilience > 20, "Good business resilience", "Opportunity to build business resilience"))

	b.WriteString("#### Areas for Improvement\n")
	fmt.Fprintf(&b, "- %s\n", pick(discipline < 15, "Focus on transaction discipline", "Good transaction management"))
	fmt.Fprintf(&b, "- %s\n\n", pick(growth < 7, "Look for growth opportunities", "Strong growth trajectory"))

	b.WriteString("#### Recommendations\n")
	fmt.Fprintf(&b, "1. %s\n", pick(income < 30, "Consider diversifying income sources", "Maintain strong income streams"))
	fmt.Fprintf(&b, "2. %s\n", pick(m.AvgBalance < m.TotalDebits, "Build emergency reserves", "Continue maintaining healthy reserves"))
	fmt.Fprintf(&b, "3. %s\n", pick(ratio < 1.5, "Review and optimize expenses", "Maintain current expense management"))
	fmt.Fprintf(&b, "4. %s\n", pick(discipline < 15, "Focus on consistent transactions", "Keep up disciplined transaction patterns"))

	return b.String()
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
