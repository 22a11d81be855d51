package cron

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"trip-planner/internal/metrics"
	"trip-planner/internal/models"
)

const topRequestsLimit = 5

type TopRequestSource interface {
	GetTopRequests(ctx context.Context, limit int) ([]models.PopularRequest, error)
}

type Publisher interface {
	Publish(key, value []byte) error
	Topic() string
}

type PopularPublisher struct {
	requests TopRequestSource
	producer Publisher
	interval time.Duration
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewPopularPublisher(
	requests TopRequestSource,
	producer Publisher,
	interval time.Duration,
	m *metrics.Metrics,
	logger *slog.Logger,
) *PopularPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &PopularPublisher{
		requests: requests,
		producer: producer,
		interval: interval,
		metrics:  m,
		logger:   logger,
	}
}

func (p *PopularPublisher) Start(ctx context.Context) {
	p.logger.Info("popular publisher started", "interval", p.interval, "topic", p.producer.Topic())

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := p.RunOnce(ctx); err != nil {
				p.logger.Warn("popular publisher iteration failed", "error", err)
			}

		case <-ctx.Done():
			p.logger.Info("popular publisher stopped")
			return
		}
	}
}

func (p *PopularPublisher) RunOnce(ctx context.Context) error {
	top, err := p.requests.GetTopRequests(ctx, topRequestsLimit)
	if err != nil {
		return err
	}
	if len(top) == 0 {
		p.logger.Debug("no popular requests found")
		return nil
	}

	published := 0
	for _, req := range top {
		value, err := json.Marshal(req)
		if err != nil {
			p.logger.Error("marshal failed", "error", err)
			continue
		}

		key := generateKey(req)
		if err := p.producer.Publish(key, value); err != nil {
			p.logger.Warn("kafka publish failed", "key", string(key), "error", err)
			continue
		}
		published++
	}

	p.metrics.PopularPublished(published)
	p.logger.Info("popular requests published", "count", published, "total", len(top))
	return nil
}

func generateKey(req models.PopularRequest) []byte {
	switch req.Kind {
	case models.KindExchange:
		return []byte(models.PairKey(req.Args["from"], req.Args["to"]))
	default:
		return []byte("unknown")
	}
}
