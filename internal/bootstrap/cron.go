package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"trip-planner/internal/cron"
	"trip-planner/internal/metrics"
)

func StartCronJobs(
	ctx context.Context,
	requests cron.TopRequestSource,
	producer cron.Publisher,
	interval time.Duration,
	m *metrics.Metrics,
	logger *slog.Logger,
) {
	popularPublisher := cron.NewPopularPublisher(requests, producer, interval, m, logger)
	go popularPublisher.Start(ctx)
}
