// Package money formats monetary amounts for display and notification
// bodies. Formatting only; no arithmetic lives here.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mfigueredo/smarket/internal/model"
)

var printer = message.NewPrinter(language.English)

// Format renders an amount in the given currency. COP is conventionally
// shown without decimals, USD with two.
func Format(amount float64, cur model.Currency) string {
	switch cur {
	case model.CurrencyUSD:
		return printer.Sprintf("$%.2f", amount)
	default:
		return printer.Sprintf("COP %.0f", amount)
	}
}
