package pipeline_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vannoorsab/FINAI/internal/domain"
	"github.com/vannoorsab/FINAI/internal/pipeline"
	"github.com/vannoorsab/FINAI/internal/scoring"
)

// MockStatementFetcher is a mock implementation of StatementFetcher for testing.
type MockStatementFetcher struct {
	FetchStatementFunc func(ctx context.Context, uri string) ([]byte, error)
	calls              []string
}

func (m *MockStatementFetcher) FetchStatement(ctx context.Context, uri string) ([]byte, error) {
	m.calls = append(m.calls, uri)
	if m.FetchStatementFunc != nil {
		return m.FetchStatementFunc(ctx, uri)
	}
	return nil, errors.New("not configured")
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return data
}

func TestAssess_ThreeTransactionScenario(t *testing.T) {
	doc := readFixture(t, "three_transactions.json")

	a, err := pipeline.NewAssessor(nil).Assess(context.Background(), pipeline.Request{
		Strategy: domain.StrategyNano,
		Document: doc,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.Len(t, a.Checksum, 64)
	assert.Equal(t, "CUST-0042", a.Profile.CustomerID)
	assert.Equal(t, 3, a.Metrics.TotalTransactions)
	assert.Equal(t, 15500.0, a.Metrics.TotalCredits)
	assert.Equal(t, 2000.0, a.Metrics.TotalDebits)
	assert.Equal(t, 15000.0, a.Metrics.AvgMonthlyIncome)

	// (2/3)*20 income stability + 30 resilience + 10 discipline + 10 growth.
	assert.InDelta(t, 63.333333, a.Score.Total, 1e-6)
	income, _ := a.Score.Component(scoring.IncomeStability)
	assert.InDelta(t, 13.333333, income, 1e-6)

	assert.Equal(t, domain.TierGrowth, a.Recommendation.Tier)
	assert.Equal(t, 250000.0, a.Recommendation.MaxAmount)
	assert.Nil(t, a.Loans)
	require.NotNil(t, a.Aggregates)
	assert.Len(t, a.Aggregates.BalanceSeries, 3)
}

func TestAssess_LoanStrategy(t *testing.T) {
	doc := readFixture(t, "loan_activity.json")

	a, err := pipeline.NewAssessor(nil).Assess(context.Background(), pipeline.Request{
		Strategy: domain.StrategyLoan,
		Document: doc,
	})
	require.NoError(t, err)

	require.NotNil(t, a.Loans)
	assert.Equal(t, 20000.0, a.Loans.TotalLoanAmount)
	assert.Equal(t, 10000.0, a.Loans.TotalRepaid)
	assert.Equal(t, 2, a.Loans.RepaymentCount)

	reliability, ok := a.Score.Component(scoring.LoanReliability)
	require.True(t, ok)
	// 50% repaid with only two repayments earns no reliability points.
	assert.Equal(t, 0.0, reliability)
	assert.GreaterOrEqual(t, a.Score.Total, 0.0)
	assert.LessOrEqual(t, a.Score.Total, 100.0)
}

func TestAssess_Deterministic(t *testing.T) {
	doc := readFixture(t, "three_transactions.json")
	assessor := pipeline.NewAssessor(nil)

	for _, s := range []domain.Strategy{domain.StrategyNano, domain.StrategyLoan, domain.StrategyCredit} {
		first, err := assessor.Assess(context.Background(), pipeline.Request{Strategy: s, Document: doc})
		require.NoError(t, err)
		second, err := assessor.Assess(context.Background(), pipeline.Request{Strategy: s, Document: doc})
		require.NoError(t, err)

		assert.Equal(t, first.Score, second.Score, s)
		assert.Equal(t, first.Metrics, second.Metrics, s)
		assert.Equal(t, first.Checksum, second.Checksum, s)
		assert.NotEqual(t, first.ID, second.ID, s)
	}
}

func TestAssess_FetchesFromSource(t *testing.T) {
	doc := readFixture(t, "three_transactions.json")
	fetcher := &MockStatementFetcher{
		FetchStatementFunc: func(ctx context.Context, uri string) ([]byte, error) {
			return doc, nil
		},
	}

	a, err := pipeline.NewAssessor(fetcher).Assess(context.Background(), pipeline.Request{
		Strategy:  domain.StrategyCredit,
		SourceURI: "gs://statements/2024/jan.json",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"gs://statements/2024/jan.json"}, fetcher.calls)
	assert.Equal(t, "gs://statements/2024/jan.json", a.SourceURI)
	assert.Equal(t, domain.StrategyCredit, a.Score.Strategy)
}

func TestAssess_Errors(t *testing.T) {
	tests := []struct {
		name      string
		req       pipeline.Request
		fetcher   pipeline.StatementFetcher
		malformed bool
		target    error
	}{
		{
			name:   "unknown strategy",
			req:    pipeline.Request{Strategy: "fico", Document: []byte(`{"transactions":[]}`)},
			target: domain.ErrUnknownStrategy,
		},
		{
			name:      "missing transactions",
			req:       pipeline.Request{Strategy: domain.StrategyNano, Document: []byte(`{"summary":{}}`)},
			malformed: true,
		},
		{
			name:      "bad date",
			req:       pipeline.Request{Strategy: domain.StrategyNano, Document: []byte(`{"transactions":[{"date":"2024-01-01"}]}`)},
			malformed: true,
		},
		{
			name:      "non-numeric summary",
			req:       pipeline.Request{Strategy: domain.StrategyNano, Document: []byte(`{"summary":{"opening_balance":"lots"},"transactions":[]}`)},
			malformed: true,
		},
		{
			name: "fetch failure",
			req:  pipeline.Request{Strategy: domain.StrategyNano, SourceURI: "gs://b/o.json"},
			fetcher: pipeline.StatementFetcherFunc(func(ctx context.Context, uri string) ([]byte, error) {
				return nil, context.DeadlineExceeded
			}),
			target: context.DeadlineExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := pipeline.NewAssessor(tt.fetcher).Assess(context.Background(), tt.req)

			assert.Nil(t, a)
			require.Error(t, err)
			assert.Equal(t, tt.malformed, domain.IsMalformedInput(err))
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestAssess_EmptyTransactions(t *testing.T) {
	a, err := pipeline.NewAssessor(nil).Assess(context.Background(), pipeline.Request{
		Strategy: domain.StrategyNano,
		Document: []byte(`{"transactions": []}`),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, a.Metrics.TotalTransactions)
	assert.Equal(t, 0.0, a.Score.Total)
	assert.Equal(t, domain.TierLimited, a.Recommendation.Tier)
}

func TestAssess_HugeAmountsStayInRange(t *testing.T) {
	doc := []byte(`{
		"summary": {"opening_balance": "0", "closing_balance": "1e300"},
		"transactions": [
			{"date": "05-01-24", "description": "Loan credit", "credit": "1e400", "debit": "", "balance": "1e400"},
			{"date": "06-01-24", "description": "Salary Credit", "credit": 1e308, "debit": "", "balance": 1e308},
			{"date": "07-01-24", "description": "Investment returns", "credit": 1e308, "debit": "", "balance": -1e308},
			{"date": "08-01-24", "description": "Loan repayment", "credit": "", "debit": 1e308, "balance": 1e308},
			{"date": "09-01-24", "description": "Utility bill", "credit": "", "debit": 1e308, "balance": 0}
		]
	}`)

	for _, strategy := range []domain.Strategy{domain.StrategyNano, domain.StrategyLoan, domain.StrategyCredit} {
		t.Run(string(strategy), func(t *testing.T) {
			a, err := pipeline.NewAssessor(nil).Assess(context.Background(), pipeline.Request{Strategy: strategy, Document: doc})
			require.NoError(t, err)

			assert.GreaterOrEqual(t, a.Score.Total, 0.0)
			assert.LessOrEqual(t, a.Score.Total, 100.0)
			// "1e400" does not fit a float64 and reads as 0.
			require.NotNil(t, a.Aggregates)
			for _, tx := range a.Aggregates.Transactions {
				if tx.Description == "Loan credit" {
					assert.Zero(t, tx.Credit)
				}
			}

			_, err = json.Marshal(a)
			assert.NoError(t, err)
		})
	}
}

func TestAssess_SingleCreditLeavesUndefinedIndicatorsFalse(t *testing.T) {
	doc := []byte(`{
		"summary": {"opening_balance": "0", "closing_balance": "50000"},
		"transactions": [{"date": "05-01-24", "description": "Salary Credit", "credit": "50000", "debit": "", "balance": "50000"}]
	}`)

	a, err := pipeline.NewAssessor(nil).Assess(context.Background(), pipeline.Request{Strategy: domain.StrategyNano, Document: doc})
	require.NoError(t, err)

	// 40 income stability + 20 resilience + 0 discipline + 10 growth.
	assert.InDelta(t, 70.0, a.Score.Total, 1e-9)
}

func TestPipeline_StepFailureIsNumbered(t *testing.T) {
	boom := errors.New("boom")
	p := pipeline.NewPipeline(
		&pipeline.NormalizeStep{},
		stepFunc(func(ctx context.Context, s *pipeline.PipelineState) error { return boom }),
	)

	err := p.Execute(context.Background(), &pipeline.PipelineState{Statement: &domain.Statement{}})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "pipeline step 2 failed")
}

func TestPipeline_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	p := pipeline.NewPipeline(stepFunc(func(ctx context.Context, s *pipeline.PipelineState) error {
		called = true
		return nil
	}))

	err := p.Execute(ctx, &pipeline.PipelineState{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestTransactions(t *testing.T) {
	stmt, txs, err := pipeline.Transactions(readFixture(t, "loan_activity.json"), pipeline.LoanAssessmentRules)
	require.NoError(t, err)

	assert.Len(t, stmt.Transactions, 6)
	require.Len(t, txs, 6)
	assert.Equal(t, domain.CategoryLoan, txs[0].Category)
	assert.Equal(t, domain.CategoryBusinessIncome, txs[1].Category)
	assert.Equal(t, domain.CategoryPersonalExpense, txs[5].Category)
}

type stepFunc func(ctx context.Context, s *pipeline.PipelineState) error

func (f stepFunc) Execute(ctx context.Context, s *pipeline.PipelineState) error { return f(ctx, s) }
