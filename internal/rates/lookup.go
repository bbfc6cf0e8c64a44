package rates

import (
	"context"
	"fmt"
	"net/url"

	"github.com/AlexZav1327/currency-converter/internal/apperrors"
	"github.com/AlexZav1327/currency-converter/models"
)

// Lookup talks to a rate-lookup endpoint in the style of exchangerate.host:
// GET {base}/convert?from=&to=&amount= answering {"result": converted, "info": {"rate": r}}.
type Lookup struct {
	client  *client
	baseURL string
	apiKey  string
}

type lookupResponse struct {
	Success *bool    `json:"success"`
	Result  *float64 `json:"result"`
	Info    struct {
		Rate  *float64 `json:"rate"`
		Quote *float64 `json:"quote"`
	} `json:"info"`
	Error *struct {
		Code int    `json:"code"`
		Type string `json:"type"`
		Info string `json:"info"`
	} `json:"error"`
}

func (l *Lookup) Name() string { return KindLookup }

func (l *Lookup) FetchRate(ctx context.Context, from, to string, amount float64) (models.Quote, error) {
	u, err := url.Parse(l.baseURL)
	if err != nil {
		return models.Quote{}, &apperrors.TransportError{Cause: fmt.Errorf("url.Parse: %w", err)}
	}

	u = u.JoinPath("convert")

	q := u.Query()
	q.Set("from", from)
	q.Set("to", to)
	q.Set("amount", formatAmount(amount))

	if l.apiKey != "" {
		q.Set("access_key", l.apiKey)
	}

	u.RawQuery = q.Encode()

	var payload lookupResponse

	err = l.client.getJSON(ctx, l.Name(), u.String(), &payload)
	if err != nil {
		return models.Quote{}, err
	}

	if payload.Error != nil || (payload.Success != nil && !*payload.Success) {
		message := "request was not successful"

		if payload.Error != nil {
			switch {
			case payload.Error.Info != "":
				message = payload.Error.Info
			case payload.Error.Type != "":
				message = payload.Error.Type
			}
		}

		return models.Quote{}, &apperrors.ProviderError{Provider: l.Name(), Message: message}
	}

	rate := payload.Info.Rate
	if rate == nil {
		rate = payload.Info.Quote
	}

	return quoteOf(rate, payload.Result), nil
}
