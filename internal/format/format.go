package format

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	rateDecimals      = 6
	maxAmountDecimals = 6
)

// RateLine renders "1 USD = 56.500000 PHP".
func RateLine(from, to string, rate float64) string {
	return fmt.Sprintf("1 %s = %s %s", from, decimal.NewFromFloat(rate).StringFixed(rateDecimals), to)
}

// Amount renders value as money in code for the given locale: the locale's symbol,
// its grouping and decimal marks, the currency's standard fraction digits and at most six.
func Amount(value float64, code string, tag language.Tag) string {
	printer := message.NewPrinter(tag)

	unit, err := currency.ParseISO(code)
	if err != nil {
		return printer.Sprintf("%v %s", number.Decimal(value, number.MaxFractionDigits(maxAmountDecimals)), code)
	}

	scale, _ := currency.Standard.Rounding(unit)
	if scale > maxAmountDecimals {
		scale = maxAmountDecimals
	}

	digits := number.Decimal(value,
		number.MinFractionDigits(scale),
		number.MaxFractionDigits(maxAmountDecimals),
	)

	return printer.Sprintf("%v %v", currency.Symbol(unit), digits)
}

// ParseLocale falls back to English for an empty or unparsable tag.
func ParseLocale(raw string) language.Tag {
	if raw == "" {
		return language.English
	}

	tag, err := language.Parse(raw)
	if err != nil {
		return language.English
	}

	return tag
}
