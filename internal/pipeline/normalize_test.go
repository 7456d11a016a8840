package pipeline

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vannoorsab/FINAI/internal/domain"
)

func raw(date, desc, credit, debit, balance string) domain.RawTransaction {
	return domain.RawTransaction{
		Date:        domain.NewRawValue(date),
		Description: domain.NewRawValue(desc),
		Credit:      domain.NewRawValue(credit),
		Debit:       domain.NewRawValue(debit),
		Balance:     domain.NewRawValue(balance),
	}
}

func TestParseStatementDate(t *testing.T) {
	tests := []struct {
		in      string
		want    civil.Date
		wantErr bool
	}{
		{in: "05-01-24", want: civil.Date{Year: 2024, Month: time.January, Day: 5}},
		{in: "05-01-24INB", want: civil.Date{Year: 2024, Month: time.January, Day: 5}},
		{in: "5-1-24", want: civil.Date{Year: 2024, Month: time.January, Day: 5}},
		{in: "31-12-99", want: civil.Date{Year: 1999, Month: time.December, Day: 31}},
		{in: "01-07-68", want: civil.Date{Year: 2068, Month: time.July, Day: 1}},
		{in: "2024-01-05", wantErr: true},
		{in: "32-01-24", wantErr: true},
		{in: "05-01-24INBINB", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatementDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize(t *testing.T) {
	txs, err := Normalize([]domain.RawTransaction{
		raw(`"06-01-24INB"`, `"Grocery Store"`, `""`, `"2,000"`, `14000`),
		raw(`"07-01-24"`, `"Salary"`, `" 15000.50 "`, `null`, `"abc"`),
		raw(`"08-01-24"`, `"Refund"`, `500`, `"-"`, `"14500"`),
	})
	require.NoError(t, err)
	require.Len(t, txs, 3)

	// Unparseable amounts become 0.
	assert.Equal(t, 0.0, txs[0].Credit)
	assert.Equal(t, 0.0, txs[0].Debit)
	assert.Equal(t, 14000.0, txs[0].Balance)
	assert.Equal(t, time.January, txs[0].Month)
	assert.Equal(t, time.Saturday, txs[0].DayOfWeek)

	assert.Equal(t, 15000.50, txs[1].Credit)
	assert.Equal(t, 0.0, txs[1].Debit)
	assert.Equal(t, 0.0, txs[1].Balance)

	assert.Equal(t, 500.0, txs[2].Credit)
	assert.Equal(t, "Refund", txs[2].Description)
	assert.Equal(t, domain.Category(""), txs[2].Category)
}

func TestNormalize_OutOfRangeAmountIsZero(t *testing.T) {
	txs, err := Normalize([]domain.RawTransaction{
		raw(`"05-01-24"`, `"Huge"`, `"1e400"`, `-1e400`, `1e308`),
	})
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Zero(t, txs[0].Credit)
	assert.Zero(t, txs[0].Debit)
	assert.Equal(t, 1e308, txs[0].Balance)
}

func TestNormalize_BadDateFailsBatch(t *testing.T) {
	txs, err := Normalize([]domain.RawTransaction{
		raw(`"05-01-24"`, `"ok"`, `1`, `0`, `1`),
		raw(`"2024/01/06"`, `"bad"`, `1`, `0`, `1`),
	})

	assert.Nil(t, txs)
	require.Error(t, err)

	var malformed *domain.MalformedInputError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 1, malformed.Index)
	assert.Equal(t, "date", malformed.Field)
	assert.Equal(t, "2024/01/06", malformed.Value)
}

func TestNormalize_PreservesAmountSums(t *testing.T) {
	amounts := []struct{ credit, debit string }{
		{`"15000"`, `""`},
		{`""`, `"2000.25"`},
		{`500.75`, `0`},
		{`"0"`, `"1234.5"`},
	}

	var raws []domain.RawTransaction
	for _, a := range amounts {
		raws = append(raws, raw(`"01-02-24"`, `"x"`, a.credit, a.debit, `0`))
	}

	txs, err := Normalize(raws)
	require.NoError(t, err)

	var sum float64
	for _, tx := range txs {
		sum += tx.Credit + tx.Debit
	}
	assert.InDelta(t, 15000+2000.25+500.75+1234.5, sum, 1e-9)
}

func TestNormalize_Empty(t *testing.T) {
	txs, err := Normalize(nil)
	require.NoError(t, err)
	assert.Empty(t, txs)
}
