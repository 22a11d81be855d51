package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
)

type contextKey string

const UserIDKey contextKey = "user_id"

type UserChecker interface {
	IsRegistered(ctx context.Context, id string) (bool, error)
}

// AuthRequired lets a request through only when the X-User-ID user has been
// announced on the user-events topic.
func AuthRequired(users UserChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIDStr := r.Header.Get("X-User-ID")
			if userIDStr == "" {
				http.Error(w, "X-User-ID header required", http.StatusUnauthorized)
				return
			}

			userID, err := strconv.ParseInt(userIDStr, 10, 64)
			if err != nil {
				http.Error(w, "Invalid X-User-ID", http.StatusBadRequest)
				return
			}

			ctx := r.Context()
			ok, err := users.IsRegistered(ctx, userIDStr)
			if err != nil {
				logger.Error("user lookup failed", "user_id", userIDStr, "error", err)
				http.Error(w, "Internal error", http.StatusInternalServerError)
				return
			}
			if !ok {
				http.Error(w, "User not registered", http.StatusUnauthorized)
				return
			}

			ctx = context.WithValue(ctx, UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserIDFromContext(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(UserIDKey).(int64)
	return userID, ok
}
