package repositories

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"trip-planner/internal/models"
)

const snapshotPattern = "exchange:*"

// SnapshotRepository keeps the prewarmed popular rates in Redis for display.
type SnapshotRepository struct {
	redis  *redis.Client
	logger *slog.Logger
}

func NewSnapshotRepository(client *redis.Client, logger *slog.Logger) *SnapshotRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotRepository{redis: client, logger: logger}
}

func (r *SnapshotRepository) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return r.redis.Set(ctx, key, data, ttl).Err()
}

func (r *SnapshotRepository) List(ctx context.Context) ([]models.ExchangeRate, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := r.redis.Scan(ctx, cursor, snapshotPattern, 100).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if len(keys) == 0 {
		return nil, nil
	}

	values, err := r.redis.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	rates := make([]models.ExchangeRate, 0, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue // expired between SCAN and MGET
		}
		var rate models.ExchangeRate
		if err := json.Unmarshal([]byte(s), &rate); err != nil {
			r.logger.Warn("bad snapshot", "key", keys[i], "error", err)
			continue
		}
		rates = append(rates, rate)
	}
	return rates, nil
}
