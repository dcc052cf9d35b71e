package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const currencyPrefix = "Ks "

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders an amount with thousands separators, e.g. "Ks 1,200".
// Fractions are kept to two places only when present.
func FormatMoney(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return currencyPrefix + moneyPrinter.Sprintf("%d", d.IntPart())
	}
	return currencyPrefix + moneyPrinter.Sprintf("%.2f", d.InexactFloat64())
}
