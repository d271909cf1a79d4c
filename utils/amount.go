package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	symbolStripper = regexp.MustCompile(`[€$%,\s]`)
	numericPattern = regexp.MustCompile(`-?\d+\.?\d*`)
)

// CleanNumericValue extracts a numeric value from a string, handling the
// formats that show up in financial statements: currency prefixes,
// thousands separators, percent signs, and accounting-style parenthesized
// negatives. It never fails; anything unparseable is 0.
func CleanNumericValue(value string) float64 {
	if value == "" || value == "0" {
		return 0.0
	}

	cleaned := symbolStripper.ReplaceAllString(value, "")

	// Accounting notation: (500) means -500
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + cleaned[1:len(cleaned)-1]
	}

	match := numericPattern.FindString(cleaned)
	if match == "" {
		return 0.0
	}

	amount, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0.0
	}
	return amount
}
