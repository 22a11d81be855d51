package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// UserRegistry mirrors users announced by the identity platform.
type UserRegistry struct {
	redis *redis.Client
}

func NewUserRegistry(client *redis.Client) *UserRegistry {
	return &UserRegistry{redis: client}
}

func userKey(id string) string {
	return "user:" + id
}

func (r *UserRegistry) Store(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	return r.redis.Set(ctx, userKey(id), data, ttl).Err()
}

func (r *UserRegistry) IsRegistered(ctx context.Context, id string) (bool, error) {
	n, err := r.redis.Exists(ctx, userKey(id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
