package export

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatCurrency renders an amount for display with thousands separators,
// e.g. "$1,234.50".
func FormatCurrency(symbol string, amount decimal.Decimal) string {
	rounded := amount.Round(2)
	abs := rounded.Abs()

	_, frac, _ := strings.Cut(abs.StringFixed(2), ".")
	whole := humanize.BigComma(abs.BigInt())

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	return sign + symbol + whole + "." + frac
}

// FormatHours renders an hours value with two fractional digits.
func FormatHours(hours decimal.Decimal) string {
	return hours.StringFixed(2)
}
