package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"trip-planner/internal/models"
)

type RateResolver interface {
	Resolve(ctx context.Context, from, to string) models.ExchangeRate
	ConvertCurrency(ctx context.Context, amount float64, from, to string) float64
	GetMultipleRates(ctx context.Context, from string, targets []string) map[string]float64
}

type RequestRecorder interface {
	RecordExchange(from, to string)
}

type SnapshotLister interface {
	List(ctx context.Context) ([]models.ExchangeRate, error)
}

type ExchangeHandler struct {
	rates     RateResolver
	recorder  RequestRecorder
	snapshots SnapshotLister
	logger    *slog.Logger
}

func NewExchangeHandler(rates RateResolver, recorder RequestRecorder, snapshots SnapshotLister, logger *slog.Logger) *ExchangeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExchangeHandler{rates: rates, recorder: recorder, snapshots: snapshots, logger: logger}
}

type pairQuery struct {
	From string `validate:"required,len=3,alpha"`
	To   string `validate:"required,len=3,alpha"`
}

func readPair(r *http.Request) (pairQuery, error) {
	q := pairQuery{
		From: strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("from"))),
		To:   strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("to"))),
	}
	return q, validate.Struct(q)
}

func (h *ExchangeHandler) record(from, to string) {
	if h.recorder != nil {
		h.recorder.RecordExchange(from, to)
	}
}

// GET /exchange?from=USD&to=EUR
func (h *ExchangeHandler) GetRate(w http.ResponseWriter, r *http.Request) {
	q, err := readPair(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "query parameters from and to must be 3-letter currency codes: "+validationMessage(err))
		return
	}

	rate := h.rates.Resolve(r.Context(), q.From, q.To)
	h.record(q.From, q.To)
	writeJSON(w, http.StatusOK, rate)
}

type conversionResponse struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
	Rate   float64 `json:"rate"`
	Result float64 `json:"result"`
}

// GET /exchange/convert?amount=10&from=USD&to=EUR
func (h *ExchangeHandler) Convert(w http.ResponseWriter, r *http.Request) {
	q, err := readPair(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "query parameters from and to must be 3-letter currency codes: "+validationMessage(err))
		return
	}
	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "amount must be a number")
		return
	}

	rate := h.rates.Resolve(r.Context(), q.From, q.To)
	h.record(q.From, q.To)
	writeJSON(w, http.StatusOK, conversionResponse{
		From:   q.From,
		To:     q.To,
		Amount: amount,
		Rate:   rate.Rate,
		Result: amount * rate.Rate,
	})
}

type ratesResponse struct {
	From  string             `json:"from"`
	Rates map[string]float64 `json:"rates"`
}

// GET /exchange/rates?from=USD&to=EUR,GBP
func (h *ExchangeHandler) Rates(w http.ResponseWriter, r *http.Request) {
	from := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("from")))
	if err := validate.Var(from, "required,len=3,alpha"); err != nil {
		writeError(w, http.StatusBadRequest, "query parameter from must be a 3-letter currency code")
		return
	}

	var targets []string
	for _, code := range strings.Split(r.URL.Query().Get("to"), ",") {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		if err := validate.Var(code, "len=3,alpha"); err != nil {
			writeError(w, http.StatusBadRequest, "invalid currency code: "+code)
			return
		}
		targets = append(targets, code)
	}
	if len(targets) == 0 {
		writeError(w, http.StatusBadRequest, "query parameter to must list at least one currency")
		return
	}

	rates := h.rates.GetMultipleRates(r.Context(), from, targets)
	for _, to := range targets {
		h.record(from, to)
	}
	writeJSON(w, http.StatusOK, ratesResponse{From: from, Rates: rates})
}

// GET /exchange/popular
func (h *ExchangeHandler) Popular(w http.ResponseWriter, r *http.Request) {
	rates, err := h.snapshots.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list rate snapshots", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load popular rates")
		return
	}
	if rates == nil {
		rates = []models.ExchangeRate{}
	}
	writeJSON(w, http.StatusOK, rates)
}

// GET /currencies
func (h *ExchangeHandler) Currencies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Currencies)
}
