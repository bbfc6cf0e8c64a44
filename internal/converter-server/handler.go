package converterserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/AlexZav1327/currency-converter/internal/apperrors"
	"github.com/AlexZav1327/currency-converter/internal/converter"
	"github.com/AlexZav1327/currency-converter/internal/currency"
	"github.com/AlexZav1327/currency-converter/internal/format"
	"github.com/AlexZav1327/currency-converter/internal/models"
	"github.com/AlexZav1327/currency-converter/internal/session"
	rootmodels "github.com/AlexZav1327/currency-converter/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

type Handler struct {
	workflow Workflow
	log      *logrus.Entry
	metrics  *metrics
	tag      language.Tag
	now      func() time.Time
}

type Workflow interface {
	Convert(ctx context.Context, request rootmodels.ConversionRequest) (rootmodels.ConversionResult, error)
	ProviderName() string
}

func NewHandler(workflow Workflow, log *logrus.Logger, tag language.Tag) *Handler {
	return &Handler{
		workflow: workflow,
		log:      log.WithField("module", "handler"),
		metrics:  httpMetrics,
		tag:      tag,
		now:      time.Now,
	}
}

func (h *Handler) currencies(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, currency.List())
}

func (h *Handler) convert(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	request, err := converter.ParseRequest(query.Get("amount"), query.Get("from"), query.Get("to"))
	if err != nil {
		h.writeError(w, err)

		return
	}

	result, err := h.workflow.Convert(r.Context(), request)
	if err != nil {
		h.log.WithError(err).Infof("convert %s->%s", request.From, request.To)
		h.writeError(w, err)

		return
	}

	h.writeJSON(w, http.StatusOK, models.ConvertResponse{
		RequestID:       uuid.New(),
		From:            request.From,
		To:              request.To,
		Amount:          request.Amount,
		Rate:            result.Rate,
		ConvertedAmount: result.ConvertedAmount,
		RateLine:        format.RateLine(request.From, request.To, result.Rate),
		FormattedAmount: format.Amount(request.Amount, request.From, h.tag),
		FormattedResult: format.Amount(result.ConvertedAmount, request.To, h.tag),
		Provider:        h.workflow.ProviderName(),
		Timestamp:       h.now().UTC(),
	})
}

// swap echoes the request with the currencies exchanged. Nothing is converted.
func (h *Handler) swap(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	request, err := converter.ParseRequest(query.Get("amount"), query.Get("from"), query.Get("to"))
	if err != nil {
		h.writeError(w, err)

		return
	}

	h.writeJSON(w, http.StatusOK, converter.Swap(request))
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	h.writeJSON(w, statusOf(err), models.ErrorResponse{
		Error:   apperrors.Kind(err),
		Message: session.Message(err),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		h.log.Warningf("json.Marshal: %s", err)
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_, err = w.Write(append(payload, '\n'))
	if err != nil {
		h.log.Warningf("ResponseWriter.Write: %s", err)
	}
}

func statusOf(err error) int {
	var transportErr *apperrors.TransportError

	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.As(err, &transportErr) && transportErr.Timeout():
		return http.StatusGatewayTimeout
	case errors.Is(err, apperrors.ErrTransport),
		errors.Is(err, apperrors.ErrProvider),
		errors.Is(err, apperrors.ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
