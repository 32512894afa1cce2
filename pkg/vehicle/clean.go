package vehicle

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// stripChars removes every rune in cut and all whitespace from s.
func stripChars(s, cut string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || strings.ContainsRune(cut, r) {
			return -1
		}
		return r
	}, s)
}

// CleanPrice converts a currency string such as "$25,000" to an exact
// decimal. Empty, "-", "$0" and unparsable values all resolve to zero.
func CleanPrice(s string) decimal.Decimal {
	trimmed := strings.TrimSpace(s)
	switch trimmed {
	case "", "-", "$0", "0":
		return decimal.Zero
	}

	cleaned := stripChars(trimmed, "$,")
	if cleaned == "" || cleaned == "0" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// CleanPercent converts a percentage string such as "95%" to a float.
// Empty, "-", "0%" and unparsable values resolve to 0.
func CleanPercent(s string) float64 {
	trimmed := strings.TrimSpace(s)
	switch trimmed {
	case "", "-", "0%":
		return 0
	}

	cleaned := stripChars(trimmed, "%")
	if cleaned == "" || cleaned == "0" {
		return 0
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// CleanInt converts an integer string such as "50,000" to an int.
// Empty, "-" and unparsable values resolve to 0.
func CleanInt(s string) int {
	trimmed := strings.TrimSpace(s)
	switch trimmed {
	case "", "-", "0":
		return 0
	}

	cleaned := stripChars(trimmed, ",")
	if cleaned == "" {
		return 0
	}

	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return n
}
