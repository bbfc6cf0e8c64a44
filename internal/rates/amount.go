package rates

import (
	"context"
	"fmt"
	"net/url"

	"github.com/AlexZav1327/currency-converter/internal/apperrors"
	"github.com/AlexZav1327/currency-converter/models"
)

// Amount talks to an amount-conversion endpoint in the style of fastforex.io:
// GET {base}/convert?from=&to=&amount= answering {"result": {"<to>": converted}}.
type Amount struct {
	client  *client
	baseURL string
	apiKey  string
}

type amountResponse struct {
	Base   string             `json:"base"`
	Amount float64            `json:"amount"`
	Result map[string]float64 `json:"result"`
	Error  string             `json:"error"`
}

func (a *Amount) Name() string { return KindAmount }

func (a *Amount) FetchRate(ctx context.Context, from, to string, amount float64) (models.Quote, error) {
	u, err := url.Parse(a.baseURL)
	if err != nil {
		return models.Quote{}, &apperrors.TransportError{Cause: fmt.Errorf("url.Parse: %w", err)}
	}

	u = u.JoinPath("convert")

	q := u.Query()
	q.Set("from", from)
	q.Set("to", to)
	q.Set("amount", formatAmount(amount))

	if a.apiKey != "" {
		q.Set("api_key", a.apiKey)
	}

	u.RawQuery = q.Encode()

	var payload amountResponse

	err = a.client.getJSON(ctx, a.Name(), u.String(), &payload)
	if err != nil {
		return models.Quote{}, err
	}

	if payload.Error != "" {
		return models.Quote{}, &apperrors.ProviderError{Provider: a.Name(), Message: payload.Error}
	}

	if payload.Result == nil {
		return models.Quote{}, &apperrors.MalformedResponseError{Provider: a.Name(), Reason: "result is missing"}
	}

	var quote models.Quote

	if converted, ok := payload.Result[to]; ok {
		quote.Converted = &converted
	}

	if rate, ok := payload.Result["rate"]; ok {
		quote.Rate = &rate
	}

	return quote, nil
}
