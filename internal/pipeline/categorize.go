package pipeline

import (
	"strings"

	"github.com/vannoorsab/FINAI/internal/domain"
)

// Rule assigns Category when any keyword occurs in the uppercased description.
type Rule struct {
	Category domain.Category
	Keywords []string
}

// RuleSet is an ordered list of rules; the first match wins.
type RuleSet []Rule

// StandardRules is the nano-entrepreneur rule set.
var StandardRules = RuleSet{
	{Category: domain.CategoryBusinessIncome, Keywords: []string{"SALARY", "INVESTMENT", "BONUS", "RETURNS", "CREDIT"}},
	{Category: domain.CategoryBusinessExpense, Keywords: []string{"UTILITY", "BILL", "SHOPPING", "STORE"}},
	{Category: domain.CategoryPersonalExpense, Keywords: []string{"COFFEE", "FOOD", "BEVERAGES"}},
	{Category: domain.CategoryTransfer, Keywords: []string{"RENT", "TRANSFER", "REFUND"}},
}

// LoanAssessmentRules adds loan receipts and repayments after the standard rules.
var LoanAssessmentRules = append(StandardRules[:len(StandardRules):len(StandardRules)],
	Rule{Category: domain.CategoryLoan, Keywords: []string{"LOAN", "REPAYMENT"}},
)

// RulesFor returns the rule set used by a scoring strategy.
func RulesFor(strategy domain.Strategy) RuleSet {
	if strategy == domain.StrategyLoan {
		return LoanAssessmentRules
	}
	return StandardRules
}

// Categorize labels a description. It returns CategoryOthers when no
// keyword matches.
func (rs RuleSet) Categorize(description string) domain.Category {
	upper := strings.ToUpper(description)
	for _, rule := range rs {
		for _, kw := range rule.Keywords {
			if strings.Contains(upper, kw) {
				return rule.Category
			}
		}
	}
	return domain.CategoryOthers
}

// Apply returns a copy of txs with Category populated.
func (rs RuleSet) Apply(txs []domain.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(txs))
	for i, tx := range txs {
		tx.Category = rs.Categorize(tx.Description)
		out[i] = tx
	}
	return out
}
