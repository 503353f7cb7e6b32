package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// FormatCurrency renders an amount as naira with locale grouping,
// e.g. 6985 -> "₦6,985". This is the canonical display format; the
// legacy fixed two-decimal dollar format is not carried.
func FormatCurrency(amount float64) string {
	return printer.Sprintf("₦%v", number.Decimal(amount))
}
