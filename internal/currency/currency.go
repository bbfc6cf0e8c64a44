package currency

import (
	"errors"
	"fmt"

	"github.com/AlexZav1327/currency-converter/models"
)

const (
	DefaultFrom = "USD"
	DefaultTo   = "PHP"
)

var ErrUnsupported = errors.New("currency is not supported")

var supported = []models.Currency{
	{Code: "USD", Name: "US Dollar", Symbol: "$"},
	{Code: "EUR", Name: "Euro", Symbol: "€"},
	{Code: "GBP", Name: "British Pound", Symbol: "£"},
	{Code: "AED", Name: "UAE Dirham", Symbol: "د.إ"},
	{Code: "JPY", Name: "Japanese Yen", Symbol: "¥"},
	{Code: "AUD", Name: "Australian Dollar", Symbol: "A$"},
	{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$"},
	{Code: "CHF", Name: "Swiss Franc", Symbol: "CHF"},
	{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥"},
	{Code: "HKD", Name: "Hong Kong Dollar", Symbol: "HK$"},
	{Code: "SGD", Name: "Singapore Dollar", Symbol: "S$"},
	{Code: "PHP", Name: "Philippine Peso", Symbol: "₱"},
	{Code: "INR", Name: "Indian Rupee", Symbol: "₹"},
	{Code: "KRW", Name: "South Korean Won", Symbol: "₩"},
	{Code: "NZD", Name: "New Zealand Dollar", Symbol: "NZ$"},
	{Code: "THB", Name: "Thai Baht", Symbol: "฿"},
	{Code: "TWD", Name: "New Taiwan Dollar", Symbol: "NT$"},
	{Code: "SEK", Name: "Swedish Krona", Symbol: "kr"},
	{Code: "NOK", Name: "Norwegian Krone", Symbol: "kr"},
	{Code: "DKK", Name: "Danish Krone", Symbol: "kr"},
	{Code: "ZAR", Name: "South African Rand", Symbol: "R"},
	{Code: "SAR", Name: "Saudi Riyal", Symbol: "﷼"},
	{Code: "MXN", Name: "Mexican Peso", Symbol: "$"},
	{Code: "BRL", Name: "Brazilian Real", Symbol: "R$"},
}

var byCode = func() map[string]models.Currency {
	index := make(map[string]models.Currency, len(supported))

	for _, c := range supported {
		index[c.Code] = c
	}

	return index
}()

// List returns the supported currencies in display order.
func List() []models.Currency {
	list := make([]models.Currency, len(supported))
	copy(list, supported)

	return list
}

func Codes() []string {
	codes := make([]string, 0, len(supported))

	for _, c := range supported {
		codes = append(codes, c.Code)
	}

	return codes
}

// Lookup matches code exactly; "usd" is not USD.
func Lookup(code string) (models.Currency, bool) {
	c, ok := byCode[code]

	return c, ok
}

func IsSupported(code string) bool {
	_, ok := byCode[code]

	return ok
}

func Validate(code string) error {
	if !IsSupported(code) {
		return fmt.Errorf("%w: %q", ErrUnsupported, code)
	}

	return nil
}
