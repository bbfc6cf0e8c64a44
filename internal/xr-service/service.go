package xrservice

import (
	"errors"
	"time"

	"github.com/AlexZav1327/currency-converter/models"
	"github.com/sirupsen/logrus"
)

var ErrWrongCurrency = errors.New("currency is not valid")

// usdRates holds units of each currency per one US dollar.
var usdRates = map[string]float64{
	"USD": 1,
	"EUR": 0.92,
	"GBP": 0.79,
	"AED": 3.6725,
	"JPY": 149.5,
	"AUD": 1.52,
	"CAD": 1.36,
	"CHF": 0.88,
	"CNY": 7.24,
	"HKD": 7.82,
	"SGD": 1.34,
	"PHP": 56.5,
	"INR": 83.2,
	"KRW": 1330,
	"NZD": 1.64,
	"THB": 35.9,
	"TWD": 31.9,
	"SEK": 10.6,
	"NOK": 10.7,
	"DKK": 6.86,
	"ZAR": 18.7,
	"SAR": 3.75,
	"MXN": 17.1,
	"BRL": 4.95,
}

type Rate struct {
	log *logrus.Entry
	now func() time.Time
}

func New(log *logrus.Logger) *Rate {
	return &Rate{
		log: log.WithField("module", "xr_service"),
		now: time.Now,
	}
}

func (r *Rate) GetCurrentRate(from, to string) (models.ExchangeRate, error) {
	fromRate, ok := usdRates[from]
	if !ok {
		return models.ExchangeRate{}, ErrWrongCurrency
	}

	toRate, ok := usdRates[to]
	if !ok {
		return models.ExchangeRate{}, ErrWrongCurrency
	}

	return models.ExchangeRate{
		Timestamp: r.now(),
		From:      from,
		To:        to,
		Rate:      toRate / fromRate,
	}, nil
}

// GetRateTable returns the rate of every known currency against base.
func (r *Rate) GetRateTable(base string) (map[string]float64, error) {
	baseRate, ok := usdRates[base]
	if !ok {
		return nil, ErrWrongCurrency
	}

	table := make(map[string]float64, len(usdRates))

	for code, rate := range usdRates {
		table[code] = rate / baseRate
	}

	r.log.Debugf("rate table for %s served", base)

	return table, nil
}
