// Package format renders money the way Indian markets display it.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR renders v as rupees with two decimals and Indian digit grouping
// (lakh/crore), e.g. 1234567.891 becomes "₹12,34,567.89".
func FormatINR(v decimal.Decimal) string {
	fixed := v.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if v.Round(2).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString("₹")
	b.WriteString(groupIndian(intPart))
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// FormatINRFloat is FormatINR for display values kept as float64.
func FormatINRFloat(v float64) string {
	return FormatINR(decimal.NewFromFloat(v))
}

// groupIndian inserts commas after the last three digits and then every two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(append(groups, tail), ",")
}
