package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/AlexZav1327/currency-converter/internal/apperrors"
	"github.com/AlexZav1327/currency-converter/models"
	"github.com/sirupsen/logrus"
)

const (
	KindPair   = "pair"
	KindAmount = "amount"
	KindLookup = "lookup"
	KindLatest = "latest"

	outcomeSuccess = "success"
	maxBodySize    = 1 << 20
	defaultTimeout = 10 * time.Second
)

var ErrUnknownKind = errors.New("unknown provider kind")

// Provider fetches a quote for converting amount of from into to.
type Provider interface {
	Name() string
	FetchRate(ctx context.Context, from, to string, amount float64) (models.Quote, error)
}

type Settings struct {
	Kind    string
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

// New builds the adapter selected by settings.Kind.
func New(settings Settings, log *logrus.Logger) (Provider, error) {
	c := newClient(settings, log)

	switch settings.Kind {
	case KindPair:
		return &Pair{client: c, baseURL: settings.BaseURL, apiKey: settings.APIKey}, nil
	case KindAmount:
		return &Amount{client: c, baseURL: settings.BaseURL, apiKey: settings.APIKey}, nil
	case KindLookup:
		return &Lookup{client: c, baseURL: settings.BaseURL, apiKey: settings.APIKey}, nil
	case KindLatest:
		return &Latest{client: c, baseURL: settings.BaseURL}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, settings.Kind)
	}
}

type client struct {
	http *http.Client
	log  *logrus.Entry
}

func newClient(settings Settings, log *logrus.Logger) *client {
	httpClient := settings.HTTPClient
	if httpClient == nil {
		timeout := settings.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}

		httpClient = &http.Client{Timeout: timeout}
	}

	return &client{
		http: httpClient,
		log:  log.WithField("module", "rates"),
	}
}

// getJSON issues one GET and decodes a 2xx body into dest. Any other status and
// any network failure become a TransportError, undecodable bodies a MalformedResponseError.
func (c *client) getJSON(ctx context.Context, provider, endpoint string, dest any) (err error) {
	started := time.Now()
	defer func() {
		outcome := outcomeSuccess
		if err != nil {
			outcome = apperrors.Kind(err)
		}

		providerMetrics.duration.WithLabelValues(provider, outcome).Observe(time.Since(started).Seconds())
	}()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &apperrors.TransportError{Cause: fmt.Errorf("http.NewRequestWithContext: %w", err)}
	}

	request.Header.Set("Accept", "application/json")

	response, err := c.http.Do(request)
	if err != nil {
		return &apperrors.TransportError{Cause: fmt.Errorf("http.Client.Do: %w", err)}
	}

	defer func() {
		closeErr := response.Body.Close()
		if closeErr != nil {
			c.log.Warningf("resp.Body.Close: %s", closeErr)
		}
	}()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		c.log.WithField("provider", provider).Debugf("unexpected status %d", response.StatusCode)

		return &apperrors.TransportError{
			Status: response.StatusCode,
			Cause:  fmt.Errorf("bad status: %s", response.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxBodySize))
	if err != nil {
		return &apperrors.TransportError{Cause: fmt.Errorf("io.ReadAll: %w", err)}
	}

	err = json.Unmarshal(body, dest)
	if err != nil {
		return &apperrors.MalformedResponseError{Provider: provider, Reason: "undecodable body", Cause: err}
	}

	return nil
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

func quoteOf(rate, converted *float64) models.Quote {
	return models.Quote{Rate: rate, Converted: converted}
}
