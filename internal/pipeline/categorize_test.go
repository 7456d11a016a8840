package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vannoorsab/FINAI/internal/domain"
)

func TestRuleSet_Categorize(t *testing.T) {
	tests := []struct {
		description string
		rules       RuleSet
		want        domain.Category
	}{
		{"Salary Credit", StandardRules, domain.CategoryBusinessIncome},
		{"mutual fund returns", StandardRules, domain.CategoryBusinessIncome},
		{"Grocery Store", StandardRules, domain.CategoryBusinessExpense},
		{"electricity bill", StandardRules, domain.CategoryBusinessExpense},
		{"Coffee Day", StandardRules, domain.CategoryPersonalExpense},
		// PERSONAL_EXPENSE is checked before TRANSFER.
		{"Coffee refund", StandardRules, domain.CategoryPersonalExpense},
		{"House rent", StandardRules, domain.CategoryTransfer},
		{"NEFT Transfer", StandardRules, domain.CategoryTransfer},
		// BUSINESS_INCOME is checked before TRANSFER.
		{"Credit card refund", StandardRules, domain.CategoryBusinessIncome},
		{"Loan disbursal", StandardRules, domain.CategoryOthers},
		{"Loan disbursal", LoanAssessmentRules, domain.CategoryLoan},
		{"EMI repayment", LoanAssessmentRules, domain.CategoryLoan},
		{"ATM withdrawal", LoanAssessmentRules, domain.CategoryOthers},
		{"", StandardRules, domain.CategoryOthers},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rules.Categorize(tt.description))
		})
	}
}

func TestRuleSet_OthersOnlyWithoutKeyword(t *testing.T) {
	descriptions := []string{"Salary", "misc", "BONUS payout", "zzz", "store", "Repayment"}

	for _, rules := range []RuleSet{StandardRules, LoanAssessmentRules} {
		for _, d := range descriptions {
			got := rules.Categorize(d)
			matched := false
			for _, r := range rules {
				for _, kw := range r.Keywords {
					if strings.Contains(strings.ToUpper(d), kw) {
						matched = true
					}
				}
			}
			assert.Equal(t, !matched, got == domain.CategoryOthers, d)
			assert.Equal(t, got, rules.Categorize(d), "deterministic for %q", d)
		}
	}
}

func TestRuleSet_ApplyDoesNotMutateInput(t *testing.T) {
	in := []domain.Transaction{{Description: "Salary"}, {Description: "misc"}}

	out := StandardRules.Apply(in)

	assert.Equal(t, domain.CategoryBusinessIncome, out[0].Category)
	assert.Equal(t, domain.CategoryOthers, out[1].Category)
	assert.Empty(t, in[0].Category)
}

func TestLoanAssessmentRulesKeepStandardOrder(t *testing.T) {
	assert.Len(t, StandardRules, 4)
	assert.Len(t, LoanAssessmentRules, 5)
	assert.Equal(t, StandardRules, LoanAssessmentRules[:4])
	assert.Equal(t, LoanAssessmentRules, RulesFor(domain.StrategyLoan))
	assert.Equal(t, StandardRules, RulesFor(domain.StrategyNano))
}
