package domain

// Strategy names a scoring formula.
type Strategy string

const (
	StrategyNano   Strategy = "nano"
	StrategyLoan   Strategy = "loan"
	StrategyCredit Strategy = "credit"
)

// Valid reports whether s names a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyNano, StrategyLoan, StrategyCredit:
		return true
	}
	return false
}

// Component is one labeled part of a score.
type Component struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Max   float64 `json:"max"`
}

// ScoreBreakdown is a bounded composite score with its ordered components.
type ScoreBreakdown struct {
	Strategy   Strategy    `json:"strategy"`
	Total      float64     `json:"total"`
	Components []Component `json:"components"`
}

// Component returns the value of the named component.
func (b ScoreBreakdown) Component(name string) (float64, bool) {
	for _, c := range b.Components {
		if c.Name == name {
			return c.Value, true
		}
	}
	return 0, false
}

// Tier is a loan recommendation band.
type Tier string

const (
	TierPriority Tier = "priority"
	TierGrowth   Tier = "growth"
	TierLimited  Tier = "limited"
)

// Recommendation is the loan guidance derived from a score.
type Recommendation struct {
	Tier     Tier   `json:"tier"`
	Headline string `json:"headline"`
	Product  string `json:"product"`
	Advice   string `json:"advice"`
	// MaxAmount is 0 for the limited tier, which carries no amount.
	MaxAmount float64 `json:"max_amount"`
}
