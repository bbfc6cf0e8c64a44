package xrserver

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// InvalidKey is the API key the stub rejects, to exercise provider-level errors.
const InvalidKey = "invalid"

type Handler struct {
	service RateService
	log     *logrus.Entry
}

func NewHandler(service RateService, log *logrus.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.WithField("module", "xr_handler"),
	}
}

func (h *Handler) pair(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "key") == InvalidKey {
		h.respond(w, map[string]any{"result": "error", "error-type": "invalid-key"})

		return
	}

	amount, err := parseAmount(chi.URLParam(r, "amount"))
	if err != nil {
		h.respond(w, map[string]any{"result": "error", "error-type": "malformed-request"})

		return
	}

	from, to := chi.URLParam(r, "from"), chi.URLParam(r, "to")

	currentRate, err := h.service.GetCurrentRate(from, to)
	if err != nil {
		h.respond(w, map[string]any{"result": "error", "error-type": "unsupported-code"})

		return
	}

	h.respond(w, map[string]any{
		"result":            "success",
		"base_code":         from,
		"target_code":       to,
		"conversion_rate":   currentRate.Rate,
		"conversion_result": amount * currentRate.Rate,
	})
}

func (h *Handler) latest(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "key") == InvalidKey {
		h.respond(w, map[string]any{"result": "error", "error-type": "invalid-key"})

		return
	}

	base := chi.URLParam(r, "from")

	table, err := h.service.GetRateTable(base)
	if err != nil {
		h.respond(w, map[string]any{"result": "error", "error-type": "unsupported-code"})

		return
	}

	h.respond(w, map[string]any{"base": base, "rates": table})
}

func (h *Handler) fastforexConvert(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("api_key") == InvalidKey {
		h.respond(w, map[string]any{"error": "Invalid API key"})

		return
	}

	amount, err := parseAmount(r.URL.Query().Get("amount"))
	if err != nil {
		h.respond(w, map[string]any{"error": "Invalid amount"})

		return
	}

	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")

	currentRate, err := h.service.GetCurrentRate(from, to)
	if err != nil {
		h.respond(w, map[string]any{"error": "Invalid currency"})

		return
	}

	h.respond(w, map[string]any{
		"base":   from,
		"amount": amount,
		"result": map[string]float64{to: amount * currentRate.Rate, "rate": currentRate.Rate},
	})
}

func (h *Handler) hostConvert(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("access_key") == InvalidKey {
		h.respond(w, hostError(101, "invalid_access_key", "You have supplied an invalid API Access Key."))

		return
	}

	amount, err := parseAmount(r.URL.Query().Get("amount"))
	if err != nil {
		h.respond(w, hostError(403, "invalid_conversion_amount", "You have not specified a valid amount."))

		return
	}

	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")

	currentRate, err := h.service.GetCurrentRate(from, to)
	if err != nil {
		h.respond(w, hostError(402, "invalid_currency_codes", "You have provided one or more invalid currency codes."))

		return
	}

	h.respond(w, map[string]any{
		"success": true,
		"query":   map[string]any{"from": from, "to": to, "amount": amount},
		"info":    map[string]any{"rate": currentRate.Rate, "timestamp": currentRate.Timestamp.Unix()},
		"result":  amount * currentRate.Rate,
	})
}

func (h *Handler) respond(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		h.log.Warningf("json.NewEncoder.Encode: %s", err)
	}
}

func hostError(code int, kind, info string) map[string]any {
	return map[string]any{
		"success": false,
		"error":   map[string]any{"code": code, "type": kind, "info": info},
	}
}

func parseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}

	if amount < 0 || math.IsInf(amount, 0) || math.IsNaN(amount) {
		return 0, strconv.ErrRange
	}

	return amount, nil
}
