package workers

import (
	"context"
	"time"
)

type WorkerHandler[T any] interface {
	Type() string
	Handle(ctx context.Context, key, value []byte) (*T, string, error)
	TTL() time.Duration
}

// MessageSource is satisfied by *kafka.Consumer.
type MessageSource interface {
	Start(ctx context.Context, handler func(key, value []byte))
}
