package services

import (
	"context"
	"log/slog"
	"time"

	"trip-planner/internal/models"
)

type RequestLogStore interface {
	Save(ctx context.Context, entry models.RequestLog) error
}

// RequestLogService feeds the popular-pair job.
type RequestLogService struct {
	repo   RequestLogStore
	now    func() time.Time
	logger *slog.Logger
}

func NewRequestLogService(repo RequestLogStore, logger *slog.Logger) *RequestLogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RequestLogService{repo: repo, now: time.Now, logger: logger}
}

func (s *RequestLogService) Save(ctx context.Context, entry models.RequestLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	return s.repo.Save(ctx, entry)
}

// RecordExchange logs a lookup without holding up the caller.
func (s *RequestLogService) RecordExchange(from, to string) {
	entry := models.RequestLog{
		Kind:      models.KindExchange,
		Args:      models.RequestArgs{"from": from, "to": to},
		CreatedAt: s.now(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.Save(ctx, entry); err != nil {
			s.logger.Warn("failed to record exchange request", "from", from, "to", to, "error", err)
		}
	}()
}
