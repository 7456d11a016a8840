// Package money formats rupee amounts for reports and generated text.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RupeeSymbol prefixes formatted amounts.
const RupeeSymbol = "₹"

// Amount formats v with two decimals and comma thousands separators,
// e.g. 1234567.891 -> "1,234,567.89".
func Amount(v float64) string {
	fixed := decimal.NewFromFloat(v).StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if sign != "" && strings.Trim(whole+frac, "0") == "" {
		sign = ""
	}
	return sign + b.String() + "." + frac
}

// Rupees formats v as a rupee amount, e.g. "₹15,000.00".
func Rupees(v float64) string {
	return RupeeSymbol + Amount(v)
}
