package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"trip-planner/internal/api"
	"trip-planner/internal/metrics"
	"trip-planner/internal/models"
)

const (
	DefaultItineraryMaxTokens   = 1200
	DefaultItineraryTemperature = 0.2

	itinerarySystemPrompt = "You are a helpful itinerary planner."
	rawSnippetLimit       = 200
)

var ErrItineraryParse = errors.New("failed to parse itinerary JSON")

var (
	leadingFence  = regexp.MustCompile("^```(?i:json)?\\s*")
	trailingFence = regexp.MustCompile("\\s*```$")
)

type Completer interface {
	Complete(ctx context.Context, req api.CompletionRequest) (string, error)
}

type ItineraryGenerator struct {
	llm         Completer
	maxTokens   int
	temperature float64
	now         func() time.Time
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

type ItineraryOption func(*ItineraryGenerator)

func WithMaxTokens(n int) ItineraryOption {
	return func(g *ItineraryGenerator) {
		if n > 0 {
			g.maxTokens = n
		}
	}
}

func WithTemperature(t float64) ItineraryOption {
	return func(g *ItineraryGenerator) { g.temperature = t }
}

func WithItineraryClock(now func() time.Time) ItineraryOption {
	return func(g *ItineraryGenerator) { g.now = now }
}

func WithItineraryMetrics(m *metrics.Metrics) ItineraryOption {
	return func(g *ItineraryGenerator) { g.metrics = m }
}

func WithItineraryLogger(l *slog.Logger) ItineraryOption {
	return func(g *ItineraryGenerator) {
		if l != nil {
			g.logger = l
		}
	}
}

func NewItineraryGenerator(llm Completer, opts ...ItineraryOption) *ItineraryGenerator {
	g := &ItineraryGenerator{
		llm:         llm,
		maxTokens:   DefaultItineraryMaxTokens,
		temperature: DefaultItineraryTemperature,
		now:         time.Now,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate asks the model for an itinerary and parses its reply. The result
// carries placeholder TripID and Day values and is never persisted here.
func (g *ItineraryGenerator) Generate(ctx context.Context, req models.ItineraryRequest) (*models.GeneratedItinerary, error) {
	started := time.Now()

	raw, err := g.llm.Complete(ctx, api.CompletionRequest{
		System:      itinerarySystemPrompt,
		Prompt:      BuildItineraryPrompt(req),
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		g.metrics.Itinerary("llm_error", started)
		return nil, err
	}

	activities, err := ParseItineraryResponse(raw)
	if err != nil {
		g.metrics.Itinerary("parse_error", started)
		g.logger.Error("model returned unparseable itinerary", "error", err)
		return nil, err
	}

	g.metrics.Itinerary("ok", started)
	return &models.GeneratedItinerary{
		TripID:     0,
		Day:        0,
		Date:       g.now(),
		Activities: activities,
		Notes:      nil,
	}, nil
}

// ParseItineraryResponse strips a surrounding ```json fence and decodes the
// rest. Any other wrapping is a parse failure.
func ParseItineraryResponse(raw string) (any, error) {
	text := strings.TrimSpace(raw)
	text = leadingFence.ReplaceAllString(text, "")
	text = trailingFence.ReplaceAllString(text, "")

	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v. Raw response: %s", ErrItineraryParse, err, snippet(raw, rawSnippetLimit))
	}
	return parsed, nil
}

func snippet(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
