package format

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₹0.00"},
		{"7", "₹7.00"},
		{"999.5", "₹999.50"},
		{"1000", "₹1,000.00"},
		{"99999.99", "₹99,999.99"},
		{"100000", "₹1,00,000.00"},
		{"1234567.891", "₹12,34,567.89"},
		{"12345678.005", "₹1,23,45,678.01"},
		{"1000000000", "₹1,00,00,00,000.00"},
		{"987654321012", "₹9,87,65,43,21,012.00"},
		{"-24567.5", "-₹24,567.50"},
		{"-0.001", "₹0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := FormatINR(decimal.RequireFromString(tt.in))
			if got != tt.want {
				t.Errorf("FormatINR(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatINRFloat(t *testing.T) {
	if got := FormatINRFloat(24567.5); got != "₹24,567.50" {
		t.Errorf("got %q", got)
	}
}
