package rates

import (
	"context"
	"fmt"
	"net/url"

	"github.com/AlexZav1327/currency-converter/internal/apperrors"
	"github.com/AlexZav1327/currency-converter/models"
)

// Pair talks to a pair-conversion endpoint in the style of exchangerate-api.com v6:
// GET {base}/{key}/pair/{from}/{to}/{amount}.
type Pair struct {
	client  *client
	baseURL string
	apiKey  string
}

type pairResponse struct {
	Result           string   `json:"result"`
	ErrorType        string   `json:"error-type"`
	BaseCode         string   `json:"base_code"`
	TargetCode       string   `json:"target_code"`
	ConversionRate   *float64 `json:"conversion_rate"`
	ConversionResult *float64 `json:"conversion_result"`
}

func (p *Pair) Name() string { return KindPair }

func (p *Pair) FetchRate(ctx context.Context, from, to string, amount float64) (models.Quote, error) {
	endpoint, err := url.JoinPath(p.baseURL, p.apiKey, "pair", from, to, formatAmount(amount))
	if err != nil {
		return models.Quote{}, &apperrors.TransportError{Cause: fmt.Errorf("url.JoinPath: %w", err)}
	}

	var payload pairResponse

	err = p.client.getJSON(ctx, p.Name(), endpoint, &payload)
	if err != nil {
		return models.Quote{}, err
	}

	switch payload.Result {
	case "success":
	case "error":
		message := payload.ErrorType
		if message == "" {
			message = "unknown-error"
		}

		return models.Quote{}, &apperrors.ProviderError{Provider: p.Name(), Message: message}
	default:
		return models.Quote{}, &apperrors.MalformedResponseError{
			Provider: p.Name(),
			Reason:   fmt.Sprintf("unexpected result %q", payload.Result),
		}
	}

	return quoteOf(payload.ConversionRate, payload.ConversionResult), nil
}
