package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"trip-planner/internal/models"
)

type RequestSaver interface {
	Save(ctx context.Context, entry models.RequestLog) error
}

type AdminHandler struct {
	requests RequestSaver
	logger   *slog.Logger
}

func NewAdminHandler(requests RequestSaver, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{requests: requests, logger: logger}
}

// CreatePopular seeds a pair for prewarming: {"text": "/exchange USD EUR"}.
func (h *AdminHandler) CreatePopular(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeError(w, http.StatusBadRequest, "field 'text' is required")
		return
	}

	entry, err := parseCommand(text)
	if err != nil {
		writeError(w, http.StatusBadRequest, "parse error: "+err.Error())
		return
	}

	if err := h.requests.Save(r.Context(), entry); err != nil {
		h.logger.Error("failed to save popular request", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		OK   bool               `json:"ok"`
		Type string             `json:"type"`
		Args models.RequestArgs `json:"args"`
	}{
		OK:   true,
		Type: entry.Kind,
		Args: entry.Args,
	})
}

func parseCommand(text string) (models.RequestLog, error) {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return models.RequestLog{}, fmt.Errorf("empty command")
	}

	switch parts[0] {
	case "/exchange":
		if len(parts) < 3 {
			return models.RequestLog{}, fmt.Errorf("usage: /exchange <from> <to>")
		}
		from, to := strings.ToUpper(parts[1]), strings.ToUpper(parts[2])
		if err := validate.Var(from, "len=3,alpha"); err != nil {
			return models.RequestLog{}, fmt.Errorf("invalid currency code: %s", parts[1])
		}
		if err := validate.Var(to, "len=3,alpha"); err != nil {
			return models.RequestLog{}, fmt.Errorf("invalid currency code: %s", parts[2])
		}
		return models.RequestLog{
			Kind: models.KindExchange,
			Args: models.RequestArgs{"from": from, "to": to},
		}, nil

	default:
		return models.RequestLog{}, fmt.Errorf("unknown command: %s", parts[0])
	}
}
