package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"trip-planner/internal/kafka"
	"trip-planner/internal/metrics"
	"trip-planner/internal/models"
)

const (
	DefaultRateTTL = 10 * time.Minute

	sharedFetchTimeout = 30 * time.Second
)

// RateProvider returns the live rate for one ordered pair.
type RateProvider interface {
	Rate(ctx context.Context, from, to string) (float64, error)
}

type pair struct {
	from, to string
}

// CurrencyService resolves exchange rates from, in order: identity, an
// in-process TTL cache, the live provider, a static fallback table and
// finally 1. It never returns an error.
type CurrencyService struct {
	provider  RateProvider
	ttl       time.Duration
	now       func() time.Time
	publisher kafka.ProducerInterface
	metrics   *metrics.Metrics
	logger    *slog.Logger

	mu       sync.RWMutex
	cache    map[pair]models.ExchangeRate
	inflight singleflight.Group
}

type CurrencyOption func(*CurrencyService)

func WithRateTTL(ttl time.Duration) CurrencyOption {
	return func(s *CurrencyService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) CurrencyOption {
	return func(s *CurrencyService) { s.now = now }
}

// WithRatePublisher publishes every live rate, keyed by models.PairKey.
func WithRatePublisher(p kafka.ProducerInterface) CurrencyOption {
	return func(s *CurrencyService) { s.publisher = p }
}

func WithCurrencyMetrics(m *metrics.Metrics) CurrencyOption {
	return func(s *CurrencyService) { s.metrics = m }
}

func WithCurrencyLogger(l *slog.Logger) CurrencyOption {
	return func(s *CurrencyService) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewCurrencyService(provider RateProvider, opts ...CurrencyOption) *CurrencyService {
	s := &CurrencyService{
		provider: provider,
		ttl:      DefaultRateTTL,
		now:      time.Now,
		logger:   slog.Default(),
		cache:    make(map[pair]models.ExchangeRate),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetExchangeRate returns the rate for from→to. Unknown pairs and provider
// failures without a fallback entry yield 1.
func (s *CurrencyService) GetExchangeRate(ctx context.Context, from, to string) float64 {
	return s.Resolve(ctx, from, to).Rate
}

func (s *CurrencyService) ConvertCurrency(ctx context.Context, amount float64, from, to string) float64 {
	return amount * s.GetExchangeRate(ctx, from, to)
}

// GetMultipleRates resolves every target concurrently. Each pair degrades
// on its own.
func (s *CurrencyService) GetMultipleRates(ctx context.Context, from string, targets []string) map[string]float64 {
	var (
		mu  sync.Mutex
		g   errgroup.Group
		out = make(map[string]float64, len(targets))
	)
	for _, to := range targets {
		g.Go(func() error {
			rate := s.GetExchangeRate(ctx, from, to)
			mu.Lock()
			out[to] = rate
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Resolve is GetExchangeRate plus the source and timestamp of the answer.
func (s *CurrencyService) Resolve(ctx context.Context, from, to string) models.ExchangeRate {
	now := s.now()
	if from == to {
		s.metrics.RateLookup(models.SourceIdentity)
		return models.ExchangeRate{From: from, To: to, Rate: 1, LastUpdated: now, Source: models.SourceIdentity}
	}

	if cached, ok := s.cached(from, to, now); ok {
		s.metrics.RateLookup(models.SourceCache)
		s.logger.Debug("exchange rate cache hit", "from", from, "to", to)
		cached.Source = models.SourceCache
		return cached
	}

	live, err := s.fetch(ctx, from, to)
	if err == nil {
		s.metrics.RateLookup(models.SourceLive)
		return live
	}
	s.logger.Warn("exchange rate fetch failed", "from", from, "to", to, "error", err)

	if rate, ok := fallbackRate(from, to); ok {
		s.metrics.RateLookup(models.SourceFallback)
		return models.ExchangeRate{From: from, To: to, Rate: rate, LastUpdated: now, Source: models.SourceFallback}
	}

	s.metrics.RateLookup(models.SourceDefault)
	s.logger.Warn("no fallback exchange rate, using 1", "from", from, "to", to)
	return models.ExchangeRate{From: from, To: to, Rate: 1, LastUpdated: now, Source: models.SourceDefault}
}

func (s *CurrencyService) cached(from, to string, now time.Time) (models.ExchangeRate, bool) {
	s.mu.RLock()
	entry, ok := s.cache[pair{from, to}]
	s.mu.RUnlock()
	if !ok || now.Sub(entry.LastUpdated) >= s.ttl {
		return models.ExchangeRate{}, false
	}
	return entry, true
}

// fetch coalesces concurrent misses for the same pair into one request.
// The shared request is detached from any single caller's cancellation;
// each caller stops waiting when its own ctx is done.
func (s *CurrencyService) fetch(ctx context.Context, from, to string) (models.ExchangeRate, error) {
	ch := s.inflight.DoChan(from+"\x00"+to, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()

		started := time.Now()
		rate, err := s.provider.Rate(fetchCtx, from, to)
		s.metrics.ObserveRateFetch(started)
		if err != nil {
			return nil, err
		}
		if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
			return nil, fmt.Errorf("invalid exchange rate %v for %s to %s", rate, from, to)
		}

		entry := models.ExchangeRate{From: from, To: to, Rate: rate, LastUpdated: s.now(), Source: models.SourceLive}
		s.mu.Lock()
		s.cache[pair{from, to}] = entry
		s.mu.Unlock()

		if s.publisher != nil {
			s.publisher.PublishObjectAsync([]byte(models.PairKey(from, to)), entry)
		}
		return entry, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return models.ExchangeRate{}, res.Err
		}
		return res.Val.(models.ExchangeRate), nil
	case <-ctx.Done():
		return models.ExchangeRate{}, ctx.Err()
	}
}
