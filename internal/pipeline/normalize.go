package pipeline

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/vannoorsab/FINAI/internal/domain"
)

const (
	// statementDateLayout is DD-MM-YY; day and month may be one or two digits.
	statementDateLayout = "2-1-06"
	// statementDateSuffix is appended to some dates by internet-banking exports.
	statementDateSuffix = "INB"
)

// Normalize converts raw statement rows into typed transactions.
// Amounts that do not parse become 0. A date that does not match DD-MM-YY
// fails the whole batch.
func Normalize(raw []domain.RawTransaction) ([]domain.Transaction, error) {
	txs := make([]domain.Transaction, 0, len(raw))
	for i, r := range raw {
		date, err := ParseStatementDate(r.Date.Text())
		if err != nil {
			return nil, &domain.MalformedInputError{
				Index:  i,
				Field:  "date",
				Value:  r.Date.Text(),
				Reason: "expected DD-MM-YY",
			}
		}

		txs = append(txs, domain.Transaction{
			Date:        date,
			Description: r.Description.Text(),
			Credit:      coerceAmount(r.Credit),
			Debit:       coerceAmount(r.Debit),
			Balance:     coerceAmount(r.Balance),
			Month:       date.Month,
			DayOfWeek:   date.In(time.UTC).Weekday(),
		})
	}
	return txs, nil
}

// ParseStatementDate parses a DD-MM-YY date with an optional trailing INB.
// Two-digit years 69-99 map to 19xx and 00-68 to 20xx.
func ParseStatementDate(s string) (civil.Date, error) {
	t, err := time.Parse(statementDateLayout, strings.TrimSuffix(s, statementDateSuffix))
	if err != nil {
		return civil.Date{}, err
	}
	return civil.DateOf(t), nil
}

// coerceAmount reads an amount, treating unparseable and out-of-range
// values as 0.
func coerceAmount(v domain.RawValue) float64 {
	f, err := v.Float64()
	if err != nil {
		return 0
	}
	return f
}
