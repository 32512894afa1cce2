package scoring

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCount renders n with thousands separators, e.g. 50,000.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatPercent renders v without trailing zeros, e.g. 95 or 98.5.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatPrice renders a dollar amount, e.g. $25,000 or $1,234.50.
func FormatPrice(d decimal.Decimal) string {
	whole := d.Truncate(0)
	out := "$" + FormatCount(int(whole.IntPart()))
	if !d.Equal(whole) {
		fixed := d.StringFixed(2)
		out += fixed[strings.LastIndex(fixed, "."):]
	}
	return out
}

// Title converts an uppercased make or model such as "HONDA" to "Honda".
// A Caser is stateful, so each call gets its own.
func Title(s string) string {
	return cases.Title(language.English).String(s)
}

func signed(n int) string {
	return fmt.Sprintf("%+d", n)
}
