package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{5, "5.00"},
		{999.999, "1,000.00"},
		{1234.5, "1,234.50"},
		{1234567.891, "1,234,567.89"},
		{-500, "-500.00"},
		{-1234.56, "-1,234.56"},
		{-0.001, "0.00"},
		{100000, "100,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Amount(tt.in))
		})
	}
}

func TestRupees(t *testing.T) {
	assert.Equal(t, "₹15,000.00", Rupees(15000))
	assert.Equal(t, "₹-500.00", Rupees(-500))
}
