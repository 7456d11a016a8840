package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// RawValue holds a JSON scalar exactly as it appeared in the statement.
// Exports mix strings and numbers for the same field, so values are kept
// raw and interpreted by the consumer.
type RawValue struct {
	raw json.RawMessage
}

// NewRawValue wraps a JSON literal, e.g. NewRawValue(`"12.50"`).
func NewRawValue(literal string) RawValue {
	return RawValue{raw: json.RawMessage(literal)}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *RawValue) UnmarshalJSON(data []byte) error {
	v.raw = append(v.raw[:0], data...)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v RawValue) MarshalJSON() ([]byte, error) {
	if v.IsNull() {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// IsNull reports whether the value is absent or JSON null.
func (v RawValue) IsNull() bool {
	trimmed := bytes.TrimSpace(v.raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Text returns the value as text: strings are unquoted, other literals are
// returned verbatim, and null yields "".
func (v RawValue) Text() string {
	if v.IsNull() {
		return ""
	}
	var s string
	if err := json.Unmarshal(v.raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(v.raw))
}

// Decimal parses the value as an exact decimal number.
func (v RawValue) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(v.Text()))
}

// ErrAmountOutOfRange reports a well-formed number too large for float64.
var ErrAmountOutOfRange = errors.New("amount out of range")

// Float64 parses the value as a finite float64.
func (v RawValue) Float64() (float64, error) {
	d, err := v.Decimal()
	if err != nil {
		return 0, err
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, ErrAmountOutOfRange
	}
	return f, nil
}

// RawTransaction is one element of the statement's "transactions" array.
type RawTransaction struct {
	Date        RawValue `json:"date"`
	Description RawValue `json:"description"`
	Credit      RawValue `json:"credit"`
	Debit       RawValue `json:"debit"`
	Balance     RawValue `json:"balance"`
}

// Statement is a decoded bank-statement export.
type Statement struct {
	PersonalInfo map[string]RawValue `json:"personal_info,omitempty"`
	AccountInfo  map[string]RawValue `json:"account_info,omitempty"`
	Summary      map[string]RawValue `json:"summary,omitempty"`
	Transactions []RawTransaction    `json:"transactions"`
}

// DecodeStatement parses a statement document. "transactions" is the only
// required key; everything else falls back to display or numeric defaults.
func DecodeStatement(data []byte) (*Statement, error) {
	var doc struct {
		PersonalInfo map[string]RawValue `json:"personal_info"`
		AccountInfo  map[string]RawValue `json:"account_info"`
		Summary      map[string]RawValue `json:"summary"`
		Transactions *[]RawTransaction   `json:"transactions"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &MalformedInputError{Index: -1, Field: "document", Reason: err.Error()}
	}
	if doc.Transactions == nil {
		return nil, &MalformedInputError{Index: -1, Field: "transactions", Reason: "required key is missing"}
	}

	return &Statement{
		PersonalInfo: doc.PersonalInfo,
		AccountInfo:  doc.AccountInfo,
		Summary:      doc.Summary,
		Transactions: *doc.Transactions,
	}, nil
}

// Profile returns the display profile with NotAvailable for missing fields.
func (s *Statement) Profile() Profile {
	return Profile{
		CustomerID:       lookupText(s.PersonalInfo, "customer_id"),
		Name:             lookupText(s.PersonalInfo, "name"),
		Mobile:           lookupText(s.PersonalInfo, "mobile"),
		KYCStatus:        lookupText(s.PersonalInfo, "kyc_status"),
		AccountNumber:    lookupText(s.AccountInfo, "account_number"),
		AvailableBalance: lookupText(s.AccountInfo, "available_balance"),
	}
}

// AccountSummary returns the opening and closing balances. Missing values
// default to 0; present values that are not numbers are malformed input.
func (s *Statement) AccountSummary() (AccountSummary, error) {
	opening, err := summaryAmount(s.Summary, "opening_balance")
	if err != nil {
		return AccountSummary{}, err
	}
	closing, err := summaryAmount(s.Summary, "closing_balance")
	if err != nil {
		return AccountSummary{}, err
	}
	return AccountSummary{OpeningBalance: opening, ClosingBalance: closing}, nil
}

func lookupText(m map[string]RawValue, key string) string {
	v, ok := m[key]
	if !ok || v.IsNull() {
		return NotAvailable
	}
	if text := v.Text(); text != "" {
		return text
	}
	return NotAvailable
}

func summaryAmount(m map[string]RawValue, key string) (float64, error) {
	v, ok := m[key]
	if !ok || v.IsNull() {
		return 0, nil
	}
	f, err := v.Float64()
	switch {
	case errors.Is(err, ErrAmountOutOfRange):
		return 0, &MalformedInputError{Index: -1, Field: "summary." + key, Value: v.Text(), Reason: "number out of range"}
	case err != nil:
		return 0, &MalformedInputError{Index: -1, Field: "summary." + key, Value: v.Text(), Reason: "not a number"}
	}
	return f, nil
}
