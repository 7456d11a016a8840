package insights

import (
	"github.com/vannoorsab/FINAI/internal/domain"
)

// DefaultLanguage is used when a request names none.
const DefaultLanguage = "English"

// Languages maps each supported display language to its ISO 639-1 code.
var Languages = map[string]string{
	"English":   "en",
	"Hindi":     "hi",
	"Kannada":   "kn",
	"Tamil":     "ta",
	"Telugu":    "te",
	"Malayalam": "ml",
}

// GeneralTips are shown alongside every analysis.
var GeneralTips = []string{
	"Maintain consistent income streams",
	"Control and minimize unnecessary expenses",
	"Build an emergency fund",
	"Invest in business growth",
	"Regularly review financial performance",
}

// Resource is an official financial-literacy link.
type Resource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

const (
	rbiLiteracyURL   = "https://www.rbi.org.in/Scripts/Financial_Literacy.aspx"
	sebiEducationURL = "https://www.sebi.gov.in/investor-education.html"
)

var governmentResources = map[string][]Resource{
	"English": {
		{Name: "RBI Financial Literacy", URL: rbiLiteracyURL},
		{Name: "SEBI Investor Education", URL: sebiEducationURL},
	},
	"Hindi": {
		{Name: "RBI वित्तीय साक्षरता", URL: rbiLiteracyURL},
		{Name: "SEBI निवेशक शिक्षा", URL: sebiEducationURL},
	},
}

// GovernmentResources returns the links for language, falling back to English.
func GovernmentResources(language string) []Resource {
	res, ok := governmentResources[language]
	if !ok {
		res = governmentResources[DefaultLanguage]
	}
	out := make([]Resource, len(res))
	copy(out, res)
	return out
}

// ValidateLanguage rejects languages without localized support.
func ValidateLanguage(language string) error {
	if _, ok := Languages[language]; !ok {
		return domain.NewValidationError("unsupported language %q", language)
	}
	return nil
}
