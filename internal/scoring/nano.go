package scoring

import (
	"math"

	"github.com/vannoorsab/FINAI/internal/domain"
)

// Nano-entrepreneur component names.
const (
	IncomeStability       = "Income Stability"
	BusinessResilience    = "Business Resilience"
	TransactionDiscipline = "Transaction Discipline"
	GrowthPotential       = "Growth Potential"
)

// NanoEntrepreneur scores income regularity, resilience, discipline and
// growth on a 40/30/20/10 point scale.
type NanoEntrepreneur struct{}

func (NanoEntrepreneur) Strategy() domain.Strategy { return domain.StrategyNano }

func (NanoEntrepreneur) Score(in Input) domain.ScoreBreakdown {
	m := in.Metrics

	incomeStability := math.Min(
		m.CreditFrequency*20+
			indicator(m.AvgCreditAmount > 10000)*20,
		40)

	resilience := math.Min(
		indicator(m.NetCashflow > 0)*20+
			indicator(m.HasVolatility() && m.BalanceVolatility < m.AvgBalance*0.3)*10,
		30)

	discipline := math.Min(
		indicator(m.TransactionFrequency > 0.5)*10+
			indicator(m.HasAvgTransactionSize() && m.AvgTransactionSize < m.AvgCreditAmount*0.5)*10,
		20)

	growth := math.Min(
		indicator(m.ClosingBalance > m.OpeningBalance)*5+
			indicator(m.TotalCredits > m.TotalDebits)*5,
		10)

	components := []domain.Component{
		{Name: IncomeStability, Value: incomeStability, Max: 40},
		{Name: BusinessResilience, Value: resilience, Max: 30},
		{Name: TransactionDiscipline, Value: discipline, Max: 20},
		{Name: GrowthPotential, Value: growth, Max: 10},
	}

	return domain.ScoreBreakdown{
		Strategy:   domain.StrategyNano,
		Total:      clamp(sumComponents(components), 0, 100),
		Components: components,
	}
}
