package domain

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var aed = message.NewPrinter(language.English)

// FormatAED renders an integer dirham amount for display, e.g. "AED 15,000".
// Quotation amounts are whole dirhams; no decimals are shown.
func FormatAED(amount int) string {
	return aed.Sprintf("AED %d", amount)
}
