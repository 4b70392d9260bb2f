// Package output renders compensation results for people: currency and
// percentage formatting, a markdown summary, and HTML or terminal renderings
// of that summary.
package output

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer = message.NewPrinter(language.English)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// FormatCurrency formats whole dollars with thousands separators: $12,345
func FormatCurrency(amount decimal.Decimal) string {
	return money(amount, 0)
}

// FormatCurrencyCents formats dollars and cents: $12,345.67
func FormatCurrencyCents(amount decimal.Decimal) string {
	return money(amount, 2)
}

// money only distinguishes whole dollars from cents
func money(amount decimal.Decimal, places int32) string {
	rounded := amount.Round(places)
	if rounded.IsZero() {
		rounded = decimal.Zero
	}
	s := printer.Sprintf("%d", rounded.Abs().IntPart())
	if places > 0 {
		s = printer.Sprintf("%.2f", rounded.Abs().InexactFloat64())
	}
	if rounded.IsNegative() {
		return "-$" + s
	}
	return "$" + s
}

// FormatDelta formats a signed difference: +$1,200, -$350 or $0
func FormatDelta(amount decimal.Decimal) string {
	s := FormatCurrency(amount)
	if amount.Round(0).IsPositive() {
		return "+" + s
	}
	return s
}

// FormatPercent formats a fractional rate as a percentage: 0.2212 -> 22.1%
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(hundred).StringFixed(1) + "%"
}

// FormatWholePercent formats a value that is already a percentage: 15 -> 15%
func FormatWholePercent(pct decimal.Decimal) string {
	return strings.TrimSuffix(strings.TrimRight(pct.StringFixed(2), "0"), ".") + "%"
}

// Monthly converts an annual amount to monthly, rounded to cents
func Monthly(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(twelve).Round(2)
}

// Annual converts a monthly amount to annual
func Annual(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(twelve)
}
