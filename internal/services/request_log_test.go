package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trip-planner/internal/models"
)

type MockRequestLogStore struct {
	mock.Mock
}

func (m *MockRequestLogStore) Save(ctx context.Context, entry models.RequestLog) error {
	return m.Called(entry).Error(0)
}

func TestRequestLogService_SaveStampsTime(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	store := new(MockRequestLogStore)
	store.On("Save", mock.MatchedBy(func(e models.RequestLog) bool {
		return e.CreatedAt.Equal(now) && e.Kind == models.KindExchange
	})).Return(nil)

	svc := NewRequestLogService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return now }

	require.NoError(t, svc.Save(context.Background(), models.RequestLog{Kind: models.KindExchange}))
	store.AssertExpectations(t)
}

func TestRequestLogService_RecordExchange(t *testing.T) {
	store := new(MockRequestLogStore)
	done := make(chan models.RequestLog, 1)
	store.On("Save", mock.Anything).Return(errors.New("db down")).Run(func(args mock.Arguments) {
		done <- args.Get(0).(models.RequestLog)
	})

	svc := NewRequestLogService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.RecordExchange("USD", "EUR")

	select {
	case entry := <-done:
		assert.Equal(t, models.RequestArgs{"from": "USD", "to": "EUR"}, entry.Args)
	case <-time.After(2 * time.Second):
		t.Fatal("request was not recorded")
	}
}
