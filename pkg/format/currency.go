// Package format renders amounts, percentages and periods for display.
package format

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// WholeCurrency returns a currency string rounded to whole dollars
// (e.g., "$1,749,531").
func WholeCurrency(amount float64) string {
	rounded := math.Round(amount)
	if rounded == 0 {
		// avoid "-$0"
		rounded = 0
	}
	return signed(rounded, printer.Sprintf("%.0f", math.Abs(rounded)))
}

// CurrencyOrDash renders non-positive amounts as an em dash, used for cost
// columns that only apply to some years.
func CurrencyOrDash(amount float64) string {
	if amount > 0 {
		return WholeCurrency(amount)
	}
	return "—"
}

// Percent formats a percentage value with no decimals (e.g., "7,544%").
func Percent(value float64) string {
	return printer.Sprintf("%.0f%%", value)
}

// Number formats a plain number with thousands separators and the given
// number of decimals.
func Number(value float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df", decimals), value)
}

func signed(amount float64, digits string) string {
	if amount < 0 {
		return "-$" + digits
	}
	return "$" + digits
}
