package domain

import (
	"time"

	"cloud.google.com/go/civil"
)

// Category is the label assigned to a transaction by keyword matching.
type Category string

const (
	CategoryBusinessIncome  Category = "BUSINESS_INCOME"
	CategoryBusinessExpense Category = "BUSINESS_EXPENSE"
	CategoryPersonalExpense Category = "PERSONAL_EXPENSE"
	CategoryTransfer        Category = "TRANSFER"
	CategoryLoan            Category = "LOAN_TRANSACTION"
	CategoryOthers          Category = "OTHERS"
)

// IsExpense reports whether debits in this category count towards expenses.
func (c Category) IsExpense() bool {
	return c == CategoryBusinessExpense || c == CategoryPersonalExpense
}

// Transaction represents one normalized statement line.
// Category is empty until the categorizer has run; Month and DayOfWeek are
// derived from Date by the normalizer.
type Transaction struct {
	Date        civil.Date   `json:"date"`
	Description string       `json:"description"`
	Credit      float64      `json:"credit"`
	Debit       float64      `json:"debit"`
	Balance     float64      `json:"balance"`
	Category    Category     `json:"category,omitempty"`
	Month       time.Month   `json:"month"`
	DayOfWeek   time.Weekday `json:"day_of_week"`
}

// AccountSummary carries the statement's reported opening and closing balances.
type AccountSummary struct {
	OpeningBalance float64 `json:"opening_balance"`
	ClosingBalance float64 `json:"closing_balance"`
}

// Profile is the display information about the account holder.
// Missing fields hold NotAvailable.
type Profile struct {
	CustomerID       string `json:"customer_id"`
	Name             string `json:"name"`
	Mobile           string `json:"mobile"`
	KYCStatus        string `json:"kyc_status"`
	AccountNumber    string `json:"account_number"`
	AvailableBalance string `json:"available_balance"`
}

// NotAvailable is the display default for absent profile fields.
const NotAvailable = "N/A"
