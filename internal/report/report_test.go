package report

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vannoorsab/FINAI/internal/domain"
	"github.com/vannoorsab/FINAI/internal/insights"
	"github.com/vannoorsab/FINAI/internal/marketplace"
)

func sampleAssessment() *domain.Assessment {
	d := civil.Date{Year: 2024, Month: 1, Day: 5}
	return &domain.Assessment{
		ID:       "a-1",
		Strategy: domain.StrategyLoan,
		Profile:  domain.Profile{CustomerID: "CUST-1", Name: "Asha", Mobile: domain.NotAvailable},
		Metrics:  domain.FinancialMetrics{TotalTransactions: 2, TotalCredits: 20000, TotalDebits: 5000, NetCashflow: 15000},
		Score: domain.ScoreBreakdown{
			Strategy:   domain.StrategyLoan,
			Total:      71.5,
			Components: []domain.Component{{Name: "Loan Reliability", Value: 21.5, Max: 30}},
		},
		Recommendation: domain.Recommendation{Tier: domain.TierGrowth, Headline: "Eligible for a growth loan", MaxAmount: 200000},
		Loans:          &domain.LoanInsights{TotalLoanAmount: 20000, TotalRepaid: 5000, RepaymentCount: 1, RepaymentPercentage: 25, InterestRate: -75},
		Aggregates: &domain.Aggregates{
			SpendByCategory: map[domain.Category]float64{domain.CategoryLoan: 5000},
			Transactions: []domain.Transaction{
				{Date: d.AddDays(10), Description: "EMI Repayment", Debit: 5000, Balance: 15000, Category: domain.CategoryLoan},
				{Date: d, Description: "Loan Disbursal", Credit: 20000, Balance: 20000, Category: domain.CategoryLoan},
			},
		},
		CreatedAt: time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestAssessment(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Assessment(&buf, sampleAssessment()))
	out := buf.String()

	for _, want := range []string{
		"=== Customer Profile ===",
		"Customer ID:  CUST-1",
		"Mobile:       N/A",
		"Total Credits:      ₹20,000.00",
		"=== Score (loan) ===",
		"Total: 71.50 / 100",
		"Loan Reliability",
		"Tier:    growth",
		"Up to:   ₹200,000.00",
		"Repaid %:      25.00%",
		"Interest Rate: -75.00%",
		"=== Spend by Category ===",
		"2024-01-15",
		"EMI Repayment",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Income by Category")
}

func TestAssessment_TruncatesTable(t *testing.T) {
	a := sampleAssessment()
	txs := make([]domain.Transaction, maxRows+3)
	for i := range txs {
		txs[i] = domain.Transaction{Description: "Row", Category: domain.CategoryOthers}
	}
	a.Aggregates.Transactions = txs

	var buf bytes.Buffer
	require.NoError(t, Assessment(&buf, a))
	assert.Contains(t, buf.String(), "... 3 more")
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("closed pipe") }

func TestAssessment_WriteError(t *testing.T) {
	assert.EqualError(t, Assessment(failingWriter{}, sampleAssessment()), "closed pipe")
}

func TestAssessments(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Assessments(&buf, nil))
	assert.Equal(t, "No assessments found.\n", buf.String())

	buf.Reset()
	require.NoError(t, Assessments(&buf, []*domain.Assessment{sampleAssessment()}))
	assert.Contains(t, buf.String(), "ID")
	assert.Contains(t, buf.String(), "2024-02-01 09:30")
	assert.Contains(t, buf.String(), "71.50")
}

func TestMarketplace(t *testing.T) {
	r := &marketplace.Result{
		Score:         domain.ScoreBreakdown{Strategy: domain.StrategyCredit, Total: 65},
		Tips:          []string{"Increase your income"},
		MonthlyIncome: 5000,
		Offers: []marketplace.Offer{{
			Category: marketplace.CategoryGovernment,
			Loan:     marketplace.Loan{Name: "PM SVANidhi", Provider: "GoI", InterestRate: 7},
			Eligible: true,
			Upgrade:  &marketplace.Upgrade{Message: marketplace.UpgradeLockedMessage},
		}},
		AdditionalLoans: domain.StatusUnavailable,
	}

	var buf bytes.Buffer
	require.NoError(t, Marketplace(&buf, r))
	out := buf.String()
	assert.Contains(t, out, "- Increase your income")
	assert.Contains(t, out, "PM SVANidhi (GoI) [eligible]")
	assert.Contains(t, out, marketplace.UpgradeLockedMessage)
	assert.Contains(t, out, "AI-suggested loans: unavailable")

	buf.Reset()
	r.Offers = nil
	require.NoError(t, Marketplace(&buf, r))
	assert.Contains(t, buf.String(), "No loans match the selected filters.")
}

func TestInsights(t *testing.T) {
	r := &insights.Report{
		Insight: insights.Insight{Status: domain.StatusFallback, Markdown: "### Financial Health Analysis\n"},
		Learning: insights.Learning{
			Language:   "Hindi",
			TipsStatus: domain.StatusUnavailable,
			Videos:     []insights.Video{{Title: "Credit 101", Channel: "RBI", Link: "https://youtu.be/x"}},
			Resources:  []insights.Resource{{Name: "RBI", URL: "https://rbi.org.in"}},
		},
		GeneralTips: []string{"Pay on time"},
	}

	var buf bytes.Buffer
	require.NoError(t, Insights(&buf, r))
	out := buf.String()
	assert.Contains(t, out, "(fallback: showing computed analysis)")
	assert.Contains(t, out, "=== Learning (Hindi) ===")
	assert.Contains(t, out, "Localized tips unavailable.")
	assert.Contains(t, out, "- Credit 101 (RBI) https://youtu.be/x")
	assert.Contains(t, out, "- RBI: https://rbi.org.in")
	assert.Contains(t, out, "- Pay on time")
}
