package catalog

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatPrice renders an integer amount with the currency symbol prefixed and
// British thousands separators, e.g. FormatPrice("£", 1250) == "£1,250".
func FormatPrice(symbol string, amount int) string {
	printer := message.NewPrinter(language.BritishEnglish)
	if amount < 0 {
		return "-" + symbol + printer.Sprintf("%d", -amount)
	}
	return symbol + printer.Sprintf("%d", amount)
}
