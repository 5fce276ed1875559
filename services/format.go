package services

import (
	"fmt"
	"strings"
)

// FormatQty renders a summed quantity: whole numbers without decimals,
// fractional quantities with two. Shutter quantities are almost always
// whole, but imported sheets occasionally carry halves.
func FormatQty(qty float64) string {
	if qty == float64(int64(qty)) {
		return fmt.Sprintf("%d", int64(qty))
	}
	return fmt.Sprintf("%.2f", qty)
}

// FormatNos renders a quantity total the way the paper prints it, e.g.
// "12 NOS".
func FormatNos(qty float64) string {
	return FormatQty(qty) + " NOS"
}

// FormatSqFt renders an area total, e.g. "37.78 SQ.FT".
func FormatSqFt(sqFt float64) string {
	return fmt.Sprintf("%.2f SQ.FT", sqFt)
}

// FormatINR formats an amount into Indian Rupee notation, grouping the
// integer part per the Indian numbering system (₹1,23,45,678.90). Always
// two decimal places.
func FormatINR(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)

	result := "₹" + applyIndianGrouping(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// applyIndianGrouping inserts commas using the Indian numbering system:
// the rightmost 3 digits form the first group, then pairs.
func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]

	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}

	return result
}
