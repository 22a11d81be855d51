package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"trip-planner/internal/models"
)

const exchangeSnapshotTTL = 10 * time.Minute

type PairResolver interface {
	Resolve(ctx context.Context, from, to string) models.ExchangeRate
}

// ExchangeWorkerHandler prewarms a popular pair through the shared resolver.
type ExchangeWorkerHandler struct {
	rates PairResolver
}

func NewExchangeWorkerHandler(rates PairResolver) *ExchangeWorkerHandler {
	return &ExchangeWorkerHandler{rates: rates}
}

func (*ExchangeWorkerHandler) Type() string {
	return models.KindExchange
}

// Handle accepts a popular-request command {"type":"exchange","args":{"from":..,"to":..}}
// or an already resolved models.ExchangeRate. Fallback and default rates are
// rejected so they never overwrite a snapshot.
func (h *ExchangeWorkerHandler) Handle(
	ctx context.Context,
	key, value []byte,
) (*models.ExchangeRate, string, error) {

	var cmd models.PopularRequest
	if err := json.Unmarshal(value, &cmd); err == nil && cmd.Kind == models.KindExchange {
		from := strings.ToUpper(strings.TrimSpace(cmd.Args["from"]))
		to := strings.ToUpper(strings.TrimSpace(cmd.Args["to"]))
		if from == "" || to == "" {
			return nil, "", fmt.Errorf("from and to required in command")
		}
		rate := h.rates.Resolve(ctx, from, to)
		if rate.Source != models.SourceLive && rate.Source != models.SourceCache {
			return nil, "", fmt.Errorf("no reliable rate for %s to %s (source %q), snapshot skipped", from, to, rate.Source)
		}
		return &rate, models.PairKey(from, to), nil
	}

	var rate models.ExchangeRate
	if err := json.Unmarshal(value, &rate); err != nil {
		return nil, "", fmt.Errorf("invalid exchange JSON: %w", err)
	}
	if rate.From == "" || rate.To == "" {
		return nil, "", fmt.Errorf("from/to empty in exchange object")
	}
	if rate.Source == models.SourceFallback || rate.Source == models.SourceDefault {
		return nil, "", fmt.Errorf("%s rate for %s to %s is not stored", rate.Source, rate.From, rate.To)
	}
	return &rate, models.PairKey(rate.From, rate.To), nil
}

func (*ExchangeWorkerHandler) TTL() time.Duration {
	return exchangeSnapshotTTL
}
