// Package services contains the raw-material takeoff pipeline: measurement
// normalization, selection resolution, dimension grouping, derived metrics
// and table assembly, plus the PDF/Excel export adapters.
package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Measurement records mix millimeter and inch inputs with no unit tag.
// Values above this threshold are treated as millimeters: no door dimension
// is below 100 mm or above 100 inches in practice. Changing this silently
// changes historical report output.
const mmThreshold = 100.0

// MMPerInch converts millimeter dimensions to inches.
const MMPerInch = 25.4

var numericPattern = regexp.MustCompile(`[\d.]+`)

// ExtractNumeric pulls a float out of a measurement value that may be a
// number, a string with unit markers (`34.00"`), or a placeholder.
// It never fails: nil, "", "-" and unparsable input all degrade to 0.
func ExtractNumeric(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" || s == "-" {
			return 0
		}
		s = stripQuoteMarks(s)
		match := numericPattern.FindString(s)
		if match == "" {
			return 0
		}
		n, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return ExtractNumeric(fmt.Sprintf("%v", value))
	}
}

// ToInchesDisplay formats a measurement value as an inches string with two
// decimals and an inch mark, e.g. `35.43"`. Values above mmThreshold are
// converted from millimeters. Zero and placeholder values yield "".
// If the value cannot be parsed at all, the original string is returned so
// the caller can still show something.
func ToInchesDisplay(value any) string {
	if value == nil {
		return ""
	}

	raw := strings.TrimSpace(fmt.Sprintf("%v", value))
	if raw == "" || raw == "-" {
		return ""
	}

	clean := strings.TrimSpace(stripQuoteMarks(raw))
	if clean == "" {
		return ""
	}

	n, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return raw
	}
	if n == 0 {
		return ""
	}
	if n > mmThreshold {
		n /= MMPerInch
	}
	return fmt.Sprintf("%.2f\"", n)
}

// inchesFromDisplay parses the numeric part back out of a ToInchesDisplay
// result. The bool is false when the display string holds no number.
func inchesFromDisplay(display string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSuffix(display, `"`), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func stripQuoteMarks(s string) string {
	s = strings.ReplaceAll(s, `"`, "")
	return strings.ReplaceAll(s, "'", "")
}
