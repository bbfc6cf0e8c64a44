package models

import (
	"time"

	"github.com/google/uuid"
)

type ConvertResponse struct {
	RequestID       uuid.UUID `json:"requestId"`
	From            string    `json:"from"`
	To              string    `json:"to"`
	Amount          float64   `json:"amount"`
	Rate            float64   `json:"rate"`
	ConvertedAmount float64   `json:"convertedAmount"`
	RateLine        string    `json:"rateLine"`
	FormattedAmount string    `json:"formattedAmount"`
	FormattedResult string    `json:"formattedResult"`
	Provider        string    `json:"provider"`
	Timestamp       time.Time `json:"timestamp"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
