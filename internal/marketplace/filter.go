package marketplace

import (
	"math"
	"regexp"
	"strconv"

	"github.com/vannoorsab/FINAI/internal/domain"
)

// CategoryAll matches every catalog section.
const CategoryAll = "All"

// Processing-time buckets.
const (
	ProcessingAll      = "All"
	ProcessingFast     = "Within 2 days"
	ProcessingStandard = "2-5 days"
	ProcessingSlow     = "5+ days"
)

// Interest-rate filter bounds, in percent per annum.
const (
	MinInterestFilter     = 5.0
	MaxInterestFilter     = 20.0
	DefaultInterestFilter = 15.0
)

// Filter narrows the offers shown.
type Filter struct {
	Category       string
	MaxInterest    float64
	ProcessingTime string
}

// DefaultFilter shows every offer up to the default interest cap.
func DefaultFilter() Filter {
	return Filter{Category: CategoryAll, MaxInterest: DefaultInterestFilter, ProcessingTime: ProcessingAll}
}

// Validate checks f against the sections of catalog.
func (f Filter) Validate(catalog Catalog) error {
	if f.Category != CategoryAll && !catalog.Has(f.Category) {
		return domain.NewValidationError("unknown loan category %q: must be %s or one of %v", f.Category, CategoryAll, catalog.Categories())
	}
	if f.MaxInterest < MinInterestFilter || f.MaxInterest > MaxInterestFilter {
		return domain.NewValidationError("max interest %.2f out of range [%.0f, %.0f]", f.MaxInterest, MinInterestFilter, MaxInterestFilter)
	}
	switch f.ProcessingTime {
	case ProcessingAll, ProcessingFast, ProcessingStandard, ProcessingSlow:
	default:
		return domain.NewValidationError("unknown processing time %q", f.ProcessingTime)
	}
	return nil
}

// Matches reports whether loan in category passes every filter.
func (f Filter) Matches(category string, loan Loan) bool {
	if f.Category != CategoryAll && f.Category != category {
		return false
	}
	if loan.InterestRate > f.MaxInterest {
		return false
	}
	return f.matchesProcessing(loan.ProcessingTime)
}

// processingBuckets are the inclusive day ranges behind each bucket.
var processingBuckets = map[string][2]int{
	ProcessingFast:     {0, 2},
	ProcessingStandard: {2, 5},
	ProcessingSlow:     {5, math.MaxInt},
}

// matchesProcessing keeps a loan whose day range overlaps the bucket by more
// than a shared endpoint, so "4-6 days" is both standard and slow. A single
// day matches every bucket containing it.
func (f Filter) matchesProcessing(processing string) bool {
	if f.ProcessingTime == ProcessingAll || f.ProcessingTime == "" {
		return true
	}
	bucket, known := processingBuckets[f.ProcessingTime]
	lo, hi, ok := ParseProcessingDays(processing)
	if !known || !ok {
		return false
	}
	if lo == hi {
		return lo >= bucket[0] && lo <= bucket[1]
	}
	return lo < bucket[1] && hi > bucket[0]
}

var processingPattern = regexp.MustCompile(`^\s*(\d+)\s*(?:-\s*(\d+))?\s*days?\s*$`)

// ParseProcessingDays reads "3-5 days" or "2 days" into a day range.
func ParseProcessingDays(s string) (lo, hi int, ok bool) {
	m := processingPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	lo, _ = strconv.Atoi(m[1])
	hi = lo
	if m[2] != "" {
		hi, _ = strconv.Atoi(m[2])
	}
	if hi < lo {
		return 0, 0, false
	}
	return lo, hi, true
}
