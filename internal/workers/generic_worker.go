package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

type SnapshotWriter interface {
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

type Worker interface {
	Start(ctx context.Context)
}

type GenericWorker[T any] struct {
	messages <-chan []byte
	store    SnapshotWriter
	handler  WorkerHandler[T]
	logger   *slog.Logger
}

func NewGenericWorker[T any](
	messages <-chan []byte,
	store SnapshotWriter,
	handler WorkerHandler[T],
	logger *slog.Logger,
) *GenericWorker[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenericWorker[T]{
		messages: messages,
		store:    store,
		handler:  handler,
		logger:   logger.With("worker", handler.Type()),
	}
}

func (w *GenericWorker[T]) Start(ctx context.Context) {
	w.logger.Info("worker started")

	for {
		select {
		case value := <-w.messages:
			w.process(ctx, value)

		case <-ctx.Done():
			w.logger.Info("worker stopped")
			return
		}
	}
}

func (w *GenericWorker[T]) process(ctx context.Context, value []byte) {
	result, cacheKey, err := w.handler.Handle(ctx, nil, value)
	if err != nil {
		w.logger.Warn("handle failed", "error", err)
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		w.logger.Error("marshal failed", "key", cacheKey, "error", err)
		return
	}

	if err := w.store.Set(ctx, cacheKey, data, w.handler.TTL()); err != nil {
		w.logger.Error("snapshot write failed", "key", cacheKey, "error", err)
		return
	}
	w.logger.Debug("snapshot stored", "key", cacheKey)
}
