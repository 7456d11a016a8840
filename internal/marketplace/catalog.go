// Package marketplace matches a statement's credit profile against a
// catalog of loan products.
package marketplace

// Loan categories, in display order.
const (
	CategoryPremium    = "premium_loans"
	CategoryGovernment = "government_schemes"
	CategoryStartup    = "startup_loans"
	// CategoryAdditional holds model-generated products.
	CategoryAdditional = "additional_loans"
)

// TenureRange is a loan term in months.
type TenureRange struct {
	MinMonths int `json:"min_months"`
	MaxMonths int `json:"max_months"`
}

// UpgradeCriteria states what unlocks better terms on an existing loan.
type UpgradeCriteria struct {
	MinCreditScore      float64 `json:"min_credit_score"`
	MinRepaymentHistory int     `json:"min_repayment_history"`
	InterestReduction   float64 `json:"interest_reduction"`
}

// Loan is one product in the catalog.
type Loan struct {
	Name              string          `json:"name"`
	Provider          string          `json:"provider"`
	Type              string          `json:"type"`
	InterestRate      float64         `json:"interest_rate"`
	MinAmount         float64         `json:"min_amount"`
	MaxAmount         float64         `json:"max_amount"`
	Tenure            TenureRange     `json:"tenure_range"`
	ProcessingTime    string          `json:"processing_time"`
	ProcessingFee     float64         `json:"processing_fee"`
	SuitableFor       []string        `json:"suitable_for"`
	RequiredDocuments []string        `json:"required_documents"`
	Features          []string        `json:"features"`
	Upgrade           UpgradeCriteria `json:"upgrade_criteria"`
}

// Section is a named group of loans.
type Section struct {
	Category string `json:"category"`
	Loans    []Loan `json:"loans"`
}

// Catalog is an ordered list of sections.
type Catalog []Section

// Categories returns the section keys in order.
func (c Catalog) Categories() []string {
	keys := make([]string, len(c))
	for i, s := range c {
		keys[i] = s.Category
	}
	return keys
}

// Has reports whether category is a section of c.
func (c Catalog) Has(category string) bool {
	for _, s := range c {
		if s.Category == category {
			return true
		}
	}
	return false
}

// BaseCatalog returns the built-in products. Each call returns a fresh copy.
func BaseCatalog() Catalog {
	return Catalog{
		{
			Category: CategoryPremium,
			Loans: []Loan{{
				Name:              "Business Growth Plus",
				Provider:          "Premium Finance",
				Type:              "Premium Business Loan",
				InterestRate:      8.5,
				MinAmount:         500000,
				MaxAmount:         2000000,
				Tenure:            TenureRange{MinMonths: 12, MaxMonths: 60},
				ProcessingTime:    "3-5 days",
				ProcessingFee:     0.5,
				SuitableFor:       []string{"Established Businesses", "High Growth Startups"},
				RequiredDocuments: []string{"2 Years Tax Returns", "Business Plan", "Financial Statements"},
				Features:          []string{"Lower Interest Rates", "Higher Limits", "Flexible Repayment"},
				Upgrade:           UpgradeCriteria{MinCreditScore: 80, MinRepaymentHistory: 6, InterestReduction: 2.0},
			}},
		},
		{
			Category: CategoryGovernment,
			Loans: []Loan{{
				Name:              "PM Street Vendor AtmaNirbhar Nidhi",
				Provider:          "Government of India",
				Type:              "Micro Enterprise Loan",
				InterestRate:      7.0,
				MinAmount:         10000,
				MaxAmount:         50000,
				Tenure:            TenureRange{MinMonths: 6, MaxMonths: 24},
				ProcessingTime:    "5-7 days",
				ProcessingFee:     0,
				SuitableFor:       []string{"Street Vendors", "Small Shop Owners"},
				RequiredDocuments: []string{"Aadhaar Card", "Vendor Certificate"},
				Features:          []string{"No Collateral Required", "Zero Processing Fee"},
				Upgrade:           UpgradeCriteria{MinCreditScore: 65, MinRepaymentHistory: 3, InterestReduction: 1.0},
			}},
		},
		{
			Category: CategoryStartup,
			Loans: []Loan{{
				Name:              "Digital Startup Boost",
				Provider:          "StartupFin",
				Type:              "Startup Loan",
				InterestRate:      10.5,
				MinAmount:         200000,
				MaxAmount:         1000000,
				Tenure:            TenureRange{MinMonths: 12, MaxMonths: 36},
				ProcessingTime:    "4-6 days",
				ProcessingFee:     1.0,
				SuitableFor:       []string{"Tech Startups", "Digital Services"},
				RequiredDocuments: []string{"Startup Registration", "Business Plan", "Founder KYC"},
				Features:          []string{"Mentorship Support", "Network Access", "Flexible Repayment"},
				Upgrade:           UpgradeCriteria{MinCreditScore: 75, MinRepaymentHistory: 4, InterestReduction: 1.5},
			}},
		},
	}
}
