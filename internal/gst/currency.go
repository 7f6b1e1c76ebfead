package gst

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RupeeSymbol prefixes amounts shown on the dashboard.
const RupeeSymbol = "₹"

var amountPrinter = message.NewPrinter(language.English)

// FormatCurrency renders an amount with comma-grouped thousands and exactly
// two fraction digits, e.g. 1234.5 -> "1,234.50".
func FormatCurrency(amount float64) string {
	return amountPrinter.Sprintf("%.2f", Round2(amount))
}

// FormatRupees is FormatCurrency with the rupee symbol.
func FormatRupees(amount float64) string {
	return RupeeSymbol + FormatCurrency(amount)
}
