package workers

import (
	"context"
	"log/slog"

	"trip-planner/internal/models"
)

type Deps struct {
	Rates     PairResolver
	Snapshots SnapshotWriter
	Users     UserStore

	UserSource    MessageSource
	PopularSource MessageSource

	Logger *slog.Logger
}

type WorkerBundle struct {
	ExchangeWorker *GenericWorker[models.ExchangeRate]
}

func StartAllWorkers(ctx context.Context, d Deps) *WorkerBundle {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	exchangeCh := make(chan []byte, 100)

	mux := NewMultiplexer(map[string]chan<- []byte{
		models.KindExchange: exchangeCh,
	}, logger)
	StartWorkerMultiplexer(ctx, d.PopularSource, mux)
	StartUserSyncer(ctx, d.UserSource, d.Users, logger)

	exchangeWorker := NewGenericWorker[models.ExchangeRate](exchangeCh, d.Snapshots, NewExchangeWorkerHandler(d.Rates), logger)
	go exchangeWorker.Start(ctx)

	return &WorkerBundle{ExchangeWorker: exchangeWorker}
}
