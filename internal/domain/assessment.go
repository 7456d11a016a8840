package domain

import "time"

// Assessment is the result of one pipeline run over a statement.
type Assessment struct {
	ID             string           `json:"id"`
	Strategy       Strategy         `json:"strategy"`
	Checksum       string           `json:"checksum_sha256"`
	SourceURI      string           `json:"source_uri,omitempty"`
	Profile        Profile          `json:"profile"`
	Summary        AccountSummary   `json:"summary"`
	Metrics        FinancialMetrics `json:"metrics"`
	Score          ScoreBreakdown   `json:"score"`
	Recommendation Recommendation   `json:"recommendation"`
	Loans          *LoanInsights    `json:"loan_insights,omitempty"`
	Aggregates     *Aggregates      `json:"aggregates,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}
