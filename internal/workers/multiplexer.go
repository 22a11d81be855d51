package workers

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Multiplexer routes popular-request messages to per-type worker channels.
type Multiplexer struct {
	routes map[string]chan<- []byte
	logger *slog.Logger
}

func NewMultiplexer(routes map[string]chan<- []byte, logger *slog.Logger) *Multiplexer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Multiplexer{routes: routes, logger: logger}
}

func (m *Multiplexer) Route(key, value []byte) {
	var wrapper struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(value, &wrapper); err != nil {
		m.logger.Warn("invalid message in multiplexer", "error", err)
		return
	}

	ch, ok := m.routes[wrapper.Type]
	if !ok {
		m.logger.Warn("unknown message type", "type", wrapper.Type)
		return
	}

	select {
	case ch <- value:
	default:
		m.logger.Warn("channel full, dropping message", "type", wrapper.Type, "key", string(key))
	}
}

func StartWorkerMultiplexer(ctx context.Context, source MessageSource, m *Multiplexer) {
	if source == nil {
		return
	}
	source.Start(ctx, m.Route)
}
