package rates

import (
	"context"
	"fmt"
	"net/url"

	"github.com/AlexZav1327/currency-converter/internal/apperrors"
	"github.com/AlexZav1327/currency-converter/models"
)

// Latest reads a whole rate table keyed by currency code:
// GET {base}/latest/{from} answering {"rates": {"<code>": rate}}.
// The amount never leaves the process.
type Latest struct {
	client  *client
	baseURL string
}

type latestResponse struct {
	Result          string             `json:"result"`
	ErrorType       string             `json:"error-type"`
	Base            string             `json:"base"`
	Rates           map[string]float64 `json:"rates"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

func (l *Latest) Name() string { return KindLatest }

func (l *Latest) FetchRate(ctx context.Context, from, to string, _ float64) (models.Quote, error) {
	endpoint, err := url.JoinPath(l.baseURL, "latest", from)
	if err != nil {
		return models.Quote{}, &apperrors.TransportError{Cause: fmt.Errorf("url.JoinPath: %w", err)}
	}

	var payload latestResponse

	err = l.client.getJSON(ctx, l.Name(), endpoint, &payload)
	if err != nil {
		return models.Quote{}, err
	}

	if payload.Result == "error" {
		message := payload.ErrorType
		if message == "" {
			message = "unknown-error"
		}

		return models.Quote{}, &apperrors.ProviderError{Provider: l.Name(), Message: message}
	}

	table := payload.Rates
	if table == nil {
		table = payload.ConversionRates
	}

	if table == nil {
		return models.Quote{}, &apperrors.MalformedResponseError{Provider: l.Name(), Reason: "rate table is missing"}
	}

	rate, ok := table[to]
	if !ok {
		return models.Quote{}, &apperrors.MalformedResponseError{
			Provider: l.Name(),
			Reason:   fmt.Sprintf("rate for %s is missing", to),
		}
	}

	return models.Quote{Rate: &rate}, nil
}
