package workers

import (
	"context"
	"log/slog"
	"time"
)

const userTTL = 24 * time.Hour

type UserStore interface {
	Store(ctx context.Context, id string, data []byte, ttl time.Duration) error
}

// StartUserSyncer mirrors user records from the identity platform into the registry.
func StartUserSyncer(ctx context.Context, source MessageSource, users UserStore, logger *slog.Logger) {
	if source == nil {
		return
	}
	source.Start(ctx, userSyncHandler(ctx, users, logger))
}

func userSyncHandler(ctx context.Context, users UserStore, logger *slog.Logger) func(key, value []byte) {
	return func(key, value []byte) {
		userID := string(key)
		if userID == "" {
			logger.Warn("user syncer: empty key")
			return
		}
		if err := users.Store(ctx, userID, value, userTTL); err != nil {
			logger.Error("user syncer: store failed", "user_id", userID, "error", err)
			return
		}
		logger.Debug("user synced", "user_id", userID)
	}
}
