package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors for rate resolution and itinerary generation.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	RateLookupsTotal      *prometheus.CounterVec
	RateFetchDuration     prometheus.Histogram
	ItineraryTotal        *prometheus.CounterVec
	ItineraryDuration     prometheus.Histogram
	PopularPublishedTotal prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RateLookupsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_rate_lookups_total",
				Help: "Exchange rate lookups by the source that answered",
			},
			[]string{"source"},
		),
		RateFetchDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "exchange_rate_fetch_duration_seconds",
				Help:    "Latency of live rate-table requests",
				Buckets: prometheus.DefBuckets,
			},
		),
		ItineraryTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "itinerary_generations_total",
				Help: "Itinerary generations by result",
			},
			[]string{"result"},
		),
		ItineraryDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "itinerary_generation_duration_seconds",
				Help:    "End-to-end itinerary generation latency",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
			},
		),
		PopularPublishedTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "popular_requests_published_total",
				Help: "Popular pairs published for prewarming",
			},
		),
	}
}

func (m *Metrics) RateLookup(source string) {
	if m == nil {
		return
	}
	m.RateLookupsTotal.WithLabelValues(source).Inc()
}

func (m *Metrics) ObserveRateFetch(started time.Time) {
	if m == nil {
		return
	}
	m.RateFetchDuration.Observe(time.Since(started).Seconds())
}

func (m *Metrics) Itinerary(result string, started time.Time) {
	if m == nil {
		return
	}
	m.ItineraryTotal.WithLabelValues(result).Inc()
	m.ItineraryDuration.Observe(time.Since(started).Seconds())
}

func (m *Metrics) PopularPublished(n int) {
	if m == nil {
		return
	}
	m.PopularPublishedTotal.Add(float64(n))
}
