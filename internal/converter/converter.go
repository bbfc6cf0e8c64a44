package converter

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/AlexZav1327/currency-converter/internal/apperrors"
	"github.com/AlexZav1327/currency-converter/internal/currency"
	"github.com/AlexZav1327/currency-converter/models"
	"github.com/sirupsen/logrus"
)

const outcomeSuccess = "success"

type RateProvider interface {
	Name() string
	FetchRate(ctx context.Context, from, to string, amount float64) (models.Quote, error)
}

// Workflow validates a request, asks the provider for exactly one quote and
// normalizes it. It keeps no state between calls.
type Workflow struct {
	provider RateProvider
	log      *logrus.Entry
}

func New(provider RateProvider, log *logrus.Logger) *Workflow {
	return &Workflow{
		provider: provider,
		log:      log.WithField("module", "converter"),
	}
}

func (w *Workflow) ProviderName() string {
	return w.provider.Name()
}

func (w *Workflow) Convert(ctx context.Context, request models.ConversionRequest) (models.ConversionResult, error) {
	err := Validate(request)
	if err != nil {
		w.observe(err)

		return models.ConversionResult{}, err
	}

	quote, err := w.provider.FetchRate(ctx, request.From, request.To, request.Amount)
	if err != nil {
		w.observe(err)
		w.log.WithError(err).Debugf("fetch %s->%s failed", request.From, request.To)

		return models.ConversionResult{}, fmt.Errorf("provider.FetchRate: %w", err)
	}

	result, err := Normalize(w.provider.Name(), request.Amount, quote)
	w.observe(err)

	if err != nil {
		return models.ConversionResult{}, err
	}

	return result, nil
}

func (w *Workflow) observe(err error) {
	outcome := outcomeSuccess
	if err != nil {
		outcome = apperrors.Kind(err)
	}

	workflowMetrics.conversions.WithLabelValues(w.provider.Name(), outcome).Inc()
}

func Validate(request models.ConversionRequest) error {
	if math.IsNaN(request.Amount) || math.IsInf(request.Amount, 0) {
		return &apperrors.InvalidInputError{Field: "amount", Reason: "must be a finite number"}
	}

	if request.Amount < 0 {
		return &apperrors.InvalidInputError{Field: "amount", Reason: "must not be negative"}
	}

	if err := currency.Validate(request.From); err != nil {
		return &apperrors.InvalidInputError{Field: "from", Reason: err.Error()}
	}

	if err := currency.Validate(request.To); err != nil {
		return &apperrors.InvalidInputError{Field: "to", Reason: err.Error()}
	}

	return nil
}

// ParseRequest turns the raw amount field and the two selections into a request.
func ParseRequest(amountText, from, to string) (models.ConversionRequest, error) {
	trimmed := strings.TrimSpace(amountText)
	if trimmed == "" {
		return models.ConversionRequest{}, &apperrors.InvalidInputError{Field: "amount", Reason: "is empty"}
	}

	amount, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return models.ConversionRequest{}, &apperrors.InvalidInputError{Field: "amount", Reason: "is not a number"}
	}

	request := models.ConversionRequest{Amount: amount, From: from, To: to}

	err = Validate(request)
	if err != nil {
		return models.ConversionRequest{}, err
	}

	return request, nil
}

// Swap exchanges from and to; the amount is left untouched.
func Swap(request models.ConversionRequest) models.ConversionRequest {
	request.From, request.To = request.To, request.From

	return request
}

// Normalize derives whichever of rate and converted amount the provider left out.
// When both are present the rate wins and the converted amount is recomputed from it.
func Normalize(provider string, amount float64, quote models.Quote) (models.ConversionResult, error) {
	switch {
	case quote.Rate != nil:
		rate := *quote.Rate
		if !validRate(rate) {
			return models.ConversionResult{}, &apperrors.MalformedResponseError{
				Provider: provider,
				Reason:   fmt.Sprintf("rate %v is not a positive finite number", rate),
			}
		}

		converted := amount * rate
		if math.IsInf(converted, 0) {
			return models.ConversionResult{}, &apperrors.InvalidInputError{
				Field:  "amount",
				Reason: "is too large to convert",
			}
		}

		return models.ConversionResult{Rate: rate, ConvertedAmount: converted}, nil

	case quote.Converted != nil:
		converted := *quote.Converted
		if math.IsNaN(converted) || math.IsInf(converted, 0) || converted < 0 {
			return models.ConversionResult{}, &apperrors.MalformedResponseError{
				Provider: provider,
				Reason:   fmt.Sprintf("converted amount %v is not a non-negative finite number", converted),
			}
		}

		if amount == 0 {
			return models.ConversionResult{Rate: 1, ConvertedAmount: 0}, nil
		}

		rate := converted / amount
		if !validRate(rate) {
			return models.ConversionResult{}, &apperrors.MalformedResponseError{
				Provider: provider,
				Reason:   fmt.Sprintf("derived rate %v is not a positive finite number", rate),
			}
		}

		return models.ConversionResult{Rate: rate, ConvertedAmount: converted}, nil

	default:
		return models.ConversionResult{}, &apperrors.MalformedResponseError{
			Provider: provider,
			Reason:   "neither rate nor converted amount present",
		}
	}
}

func validRate(rate float64) bool {
	return rate > 0 && !math.IsInf(rate, 0) && !math.IsNaN(rate)
}
