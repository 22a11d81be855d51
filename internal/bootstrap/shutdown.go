package bootstrap

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"trip-planner/internal/kafka"
)

const shutdownTimeout = 10 * time.Second

// GracefulShutdown waits for ctx to be cancelled (signal), stops the server,
// then releases Kafka, Redis and Postgres. The returned channel closes when
// cleanup is finished.
func GracefulShutdown(
	ctx context.Context,
	srv *http.Server,
	db *sql.DB,
	redisClient *redis.Client,
	kafkaBundle *kafka.KafkaBundle,
	logger *slog.Logger,
) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)
		<-ctx.Done()

		logger.Info("shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}

		if kafkaBundle != nil {
			kafkaBundle.Close()
		}
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Error("redis close error", "error", err)
			}
		}
		if db != nil {
			if err := db.Close(); err != nil {
				logger.Error("postgres close error", "error", err)
			}
		}
	}()

	return done
}
