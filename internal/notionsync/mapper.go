package notionsync

import (
	"time"

	"github.com/jomei/notionapi"
	"github.com/vannoorsab/FINAI/internal/domain"
)

// Property names in the assessments database.
const (
	PropAssessmentID = "Assessment ID"
	PropStrategy     = "Strategy"
	PropScore        = "Score"
	PropTier         = "Tier"
	PropCustomer     = "Customer"
	PropCustomerID   = "Customer ID"
	PropCredits      = "Total Credits"
	PropDebits       = "Total Debits"
	PropNetCashflow  = "Net Cashflow"
	PropRepaidPct    = "Loan Repaid %"
	PropAssessedAt   = "Assessed At"
	PropChecksum     = "Checksum"
	PropSourceURI    = "Source"
)

// AssessmentToNotionProperties converts an assessment to page properties.
// The Assessment ID title is the key used to find the page again.
func AssessmentToNotionProperties(a *domain.Assessment) notionapi.Properties {
	props := notionapi.Properties{
		PropAssessmentID: notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{Content: a.ID},
				},
			},
		},
		PropStrategy: notionapi.SelectProperty{
			Select: notionapi.Option{Name: string(a.Strategy)},
		},
		PropScore:       notionapi.NumberProperty{Number: a.Score.Total},
		PropCredits:     notionapi.NumberProperty{Number: a.Metrics.TotalCredits},
		PropDebits:      notionapi.NumberProperty{Number: a.Metrics.TotalDebits},
		PropNetCashflow: notionapi.NumberProperty{Number: a.Metrics.NetCashflow},
		PropChecksum:    richText(a.Checksum),
	}

	if a.Recommendation.Tier != "" {
		props[PropTier] = notionapi.SelectProperty{
			Select: notionapi.Option{Name: string(a.Recommendation.Tier)},
		}
	}

	if known(a.Profile.Name) {
		props[PropCustomer] = richText(a.Profile.Name)
	}
	if known(a.Profile.CustomerID) {
		props[PropCustomerID] = richText(a.Profile.CustomerID)
	}

	if a.Loans != nil {
		props[PropRepaidPct] = notionapi.NumberProperty{Number: a.Loans.RepaymentPercentage}
	}

	if !a.CreatedAt.IsZero() {
		d := notionapi.Date(a.CreatedAt.UTC().Truncate(time.Second))
		props[PropAssessedAt] = notionapi.DateProperty{
			Date: &notionapi.DateObject{Start: &d},
		}
	}

	if a.SourceURI != "" {
		props[PropSourceURI] = richText(a.SourceURI)
	}

	return props
}

func richText(content string) notionapi.RichTextProperty {
	return notionapi.RichTextProperty{
		RichText: []notionapi.RichText{
			{
				Type: notionapi.ObjectTypeText,
				Text: &notionapi.Text{Content: content},
			},
		},
	}
}

func known(s string) bool {
	return s != "" && s != domain.NotAvailable
}

// extractAssessmentID reads the title of a page from the assessments database.
// Returns empty string if not found.
func extractAssessmentID(page notionapi.Page) string {
	prop, ok := page.Properties[PropAssessmentID]
	if !ok {
		return ""
	}
	switch title := prop.(type) {
	case *notionapi.TitleProperty:
		return firstText(title.Title)
	case notionapi.TitleProperty:
		return firstText(title.Title)
	}
	return ""
}

func firstText(rt []notionapi.RichText) string {
	if len(rt) == 0 {
		return ""
	}
	if rt[0].PlainText != "" {
		return rt[0].PlainText
	}
	if rt[0].Text != nil {
		return rt[0].Text.Content
	}
	return ""
}
