package bigquery

import (
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/vannoorsab/FINAI/internal/domain"
)

// AssessmentRow represents an assessment record in BigQuery. Payload holds
// the full assessment; the other columns exist for querying.
type AssessmentRow struct {
	AssessmentID string `bigquery:"assessment_id"` // REQUIRED
	Strategy     string `bigquery:"strategy"`      // REQUIRED
	Checksum     string `bigquery:"checksum_sha256"`

	SourceURI    bigquery.NullString `bigquery:"source_uri"`
	CustomerID   bigquery.NullString `bigquery:"customer_id"`
	CustomerName bigquery.NullString `bigquery:"customer_name"`

	StatementStartDate bigquery.NullDate `bigquery:"statement_start_date"`
	StatementEndDate   bigquery.NullDate `bigquery:"statement_end_date"`

	ScoreTotal   float64 `bigquery:"score_total"`
	Tier         string  `bigquery:"tier"`
	TotalCredits float64 `bigquery:"total_credits"`
	TotalDebits  float64 `bigquery:"total_debits"`
	NetCashflow  float64 `bigquery:"net_cashflow"`

	CreatedTS time.Time `bigquery:"created_ts"` // REQUIRED

	Payload bigquery.NullJSON `bigquery:"payload"`
}

// TransactionRow represents one categorized statement line in BigQuery.
type TransactionRow struct {
	AssessmentID    string            `bigquery:"assessment_id"`
	StatementLineNo int64             `bigquery:"statement_line_no"`
	TransactionDate bigquery.NullDate `bigquery:"transaction_date"`
	Description     string            `bigquery:"description"`
	Credit          float64           `bigquery:"credit"`
	Debit           float64           `bigquery:"debit"`
	BalanceAfter    float64           `bigquery:"balance_after"`
	CategoryName    string            `bigquery:"category_name"`
	CreatedTS       time.Time         `bigquery:"created_ts"`
}

// NewAssessmentRow flattens an assessment for insertion.
func NewAssessmentRow(a *domain.Assessment) (*AssessmentRow, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("NewAssessmentRow: encoding payload: %w", err)
	}

	row := &AssessmentRow{
		AssessmentID: a.ID,
		Strategy:     string(a.Strategy),
		Checksum:     a.Checksum,
		SourceURI:    nullString(a.SourceURI),
		CustomerID:   nullString(a.Profile.CustomerID),
		CustomerName: nullString(a.Profile.Name),
		ScoreTotal:   a.Score.Total,
		Tier:         string(a.Recommendation.Tier),
		TotalCredits: a.Metrics.TotalCredits,
		TotalDebits:  a.Metrics.TotalDebits,
		NetCashflow:  a.Metrics.NetCashflow,
		CreatedTS:    a.CreatedAt,
		Payload:      bigquery.NullJSON{JSONVal: string(payload), Valid: true},
	}

	if a.Aggregates != nil && len(a.Aggregates.BalanceSeries) > 0 {
		series := a.Aggregates.BalanceSeries
		row.StatementStartDate = bigquery.NullDate{Date: series[0].Date, Valid: true}
		row.StatementEndDate = bigquery.NullDate{Date: series[len(series)-1].Date, Valid: true}
	}

	return row, nil
}

// Assessment decodes the stored payload.
func (r *AssessmentRow) Assessment() (*domain.Assessment, error) {
	if !r.Payload.Valid {
		return nil, fmt.Errorf("AssessmentRow.Assessment: %s has no payload", r.AssessmentID)
	}
	var a domain.Assessment
	if err := json.Unmarshal([]byte(r.Payload.JSONVal), &a); err != nil {
		return nil, fmt.Errorf("AssessmentRow.Assessment: decoding payload: %w", err)
	}
	return &a, nil
}

// NewTransactionRows converts the detailed table of an assessment.
func NewTransactionRows(a *domain.Assessment) []*TransactionRow {
	if a.Aggregates == nil {
		return nil
	}
	rows := make([]*TransactionRow, 0, len(a.Aggregates.Transactions))
	for i, tx := range a.Aggregates.Transactions {
		rows = append(rows, &TransactionRow{
			AssessmentID:    a.ID,
			StatementLineNo: int64(i + 1),
			TransactionDate: bigquery.NullDate{Date: tx.Date, Valid: tx.Date.IsValid()},
			Description:     tx.Description,
			Credit:          tx.Credit,
			Debit:           tx.Debit,
			BalanceAfter:    tx.Balance,
			CategoryName:    string(tx.Category),
			CreatedTS:       a.CreatedAt,
		})
	}
	return rows
}

func nullString(s string) bigquery.NullString {
	return bigquery.NullString{StringVal: s, Valid: s != "" && s != domain.NotAvailable}
}
