package bigquery

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vannoorsab/FINAI/internal/domain"
)

func sampleAssessment() *domain.Assessment {
	d := civil.Date{Year: 2024, Month: 1, Day: 5}
	return &domain.Assessment{
		ID:       "a-1",
		Strategy: domain.StrategyNano,
		Checksum: "abc",
		Profile:  domain.Profile{CustomerID: "CUST-0042", Name: domain.NotAvailable},
		Metrics:  domain.FinancialMetrics{TotalCredits: 15500, TotalDebits: 2000, NetCashflow: 13500},
		Score:    domain.ScoreBreakdown{Strategy: domain.StrategyNano, Total: 63.33},
		Recommendation: domain.Recommendation{
			Tier: domain.TierGrowth,
		},
		Aggregates: &domain.Aggregates{
			BalanceSeries: []domain.BalancePoint{{Date: d, Balance: 16000}, {Date: d.AddDays(2), Balance: 14500}},
			Transactions: []domain.Transaction{
				{Date: d.AddDays(2), Description: "Coffee refund", Credit: 500, Balance: 14500, Category: domain.CategoryPersonalExpense},
				{Date: d, Description: "Salary Credit", Credit: 15000, Balance: 16000, Category: domain.CategoryBusinessIncome},
			},
		},
		CreatedAt: time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestNewAssessmentRow(t *testing.T) {
	a := sampleAssessment()

	row, err := NewAssessmentRow(a)
	require.NoError(t, err)

	assert.Equal(t, "a-1", row.AssessmentID)
	assert.Equal(t, "nano", row.Strategy)
	assert.Equal(t, "growth", row.Tier)
	assert.Equal(t, 63.33, row.ScoreTotal)
	assert.True(t, row.CustomerID.Valid)
	assert.False(t, row.CustomerName.Valid, "N/A is stored as NULL")
	assert.False(t, row.SourceURI.Valid)
	assert.Equal(t, civil.Date{Year: 2024, Month: 1, Day: 5}, row.StatementStartDate.Date)
	assert.Equal(t, civil.Date{Year: 2024, Month: 1, Day: 7}, row.StatementEndDate.Date)

	back, err := row.Assessment()
	require.NoError(t, err)
	assert.Equal(t, a.ID, back.ID)
	assert.Equal(t, a.Score, back.Score)
	assert.Equal(t, a.Aggregates.Transactions, back.Aggregates.Transactions)
	assert.True(t, a.CreatedAt.Equal(back.CreatedAt))
}

func TestNewAssessmentRow_NoAggregates(t *testing.T) {
	a := sampleAssessment()
	a.Aggregates = nil

	row, err := NewAssessmentRow(a)
	require.NoError(t, err)
	assert.False(t, row.StatementStartDate.Valid)
	assert.Nil(t, NewTransactionRows(a))
}

func TestAssessmentRow_MissingPayload(t *testing.T) {
	_, err := (&AssessmentRow{AssessmentID: "x"}).Assessment()
	assert.Error(t, err)
}

func TestNewTransactionRows(t *testing.T) {
	rows := NewTransactionRows(sampleAssessment())

	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].StatementLineNo)
	assert.Equal(t, "Coffee refund", rows[0].Description)
	assert.Equal(t, "PERSONAL_EXPENSE", rows[0].CategoryName)
	assert.Equal(t, int64(2), rows[1].StatementLineNo)
	assert.Equal(t, "a-1", rows[1].AssessmentID)
}
