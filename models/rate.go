package models

import "time"

type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type ConversionRequest struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
}

type ConversionResult struct {
	Rate            float64 `json:"rate"`
	ConvertedAmount float64 `json:"convertedAmount"`
}

// Quote is a provider payload reduced to the two values a conversion needs.
// A nil field means the provider did not return it.
type Quote struct {
	Rate      *float64
	Converted *float64
}

// ExchangeRate is one row of the stub provider's rate table.
type ExchangeRate struct {
	Timestamp time.Time `json:"timestamp"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Rate      float64   `json:"rate"`
}
