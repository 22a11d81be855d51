package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trip-planner/internal/api"
	"trip-planner/internal/models"
)

type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, req api.CompletionRequest) (string, error) {
	args := m.Called(req)
	return args.String(0), args.Error(1)
}

func newTestGenerator(llm Completer, now time.Time) *ItineraryGenerator {
	return NewItineraryGenerator(llm,
		WithItineraryClock(func() time.Time { return now }),
		WithItineraryLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func TestBuildItineraryPrompt_AllFields(t *testing.T) {
	req := models.ItineraryRequest{
		Title:       "Summer",
		Destination: "Rome",
		StartDate:   "2024-06-01",
		EndDate:     "2024-06-05",
	}

	prompt := BuildItineraryPrompt(req)

	assert.True(t, strings.HasPrefix(prompt, "Create a day-by-day itinerary for a trip"))
	assert.Contains(t, prompt, `called "Summer"`)
	assert.Contains(t, prompt, "to Rome")
	assert.Contains(t, prompt, "from 2024-06-01 to 2024-06-05")
	assert.True(t, strings.HasSuffix(prompt, "Output only JSON."))
	assert.Equal(t, prompt, BuildItineraryPrompt(req))
}

func TestBuildItineraryPrompt_OmitsMissingClauses(t *testing.T) {
	prompt := BuildItineraryPrompt(models.ItineraryRequest{StartDate: "2024-06-01"})

	assert.True(t, strings.HasPrefix(prompt, "Create a day-by-day itinerary for a trip."))
	assert.NotContains(t, prompt, "called")
	assert.NotContains(t, prompt, "from 2024-06-01")
	assert.NotContains(t, prompt, "Preferences")
}

func TestBuildItineraryPrompt_Preferences(t *testing.T) {
	req := models.ItineraryRequest{
		Destination: "Kyoto",
		Preferences: json.RawMessage(`{ "pace": "slow",  "interests": ["temples", "food"] }`),
	}

	prompt := BuildItineraryPrompt(req)

	assert.Contains(t, prompt, `to Kyoto. Preferences: {"pace":"slow","interests":["temples","food"]}. Return a JSON array`)
	assert.NotContains(t, BuildItineraryPrompt(models.ItineraryRequest{Preferences: json.RawMessage("null")}), "Preferences")
}

func TestGenerate_ParsesFencedJSON(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	llm := new(MockCompleter)
	llm.On("Complete", mock.MatchedBy(func(req api.CompletionRequest) bool {
		return req.MaxTokens == 1200 &&
			req.Temperature == 0.2 &&
			strings.Contains(req.System, "helpful itinerary planner") &&
			strings.HasSuffix(req.Prompt, "Output only JSON.")
	})).Return("```json\n[{\"day\":1}]\n```", nil)

	out, err := newTestGenerator(llm, now).Generate(context.Background(), models.ItineraryRequest{Destination: "Rome"})
	require.NoError(t, err)

	assert.Equal(t, []any{map[string]any{"day": float64(1)}}, out.Activities)
	assert.Equal(t, int64(0), out.TripID)
	assert.Equal(t, 0, out.Day)
	assert.Equal(t, now, out.Date)
	assert.Nil(t, out.Notes)
	llm.AssertExpectations(t)
}

func TestGenerate_ParseFailure(t *testing.T) {
	llm := new(MockCompleter)
	llm.On("Complete", mock.Anything).Return("not json at all", nil)

	out, err := newTestGenerator(llm, time.Now()).Generate(context.Background(), models.ItineraryRequest{})

	assert.Nil(t, out)
	require.ErrorIs(t, err, ErrItineraryParse)
	assert.Contains(t, err.Error(), "not json at all")
	assert.Contains(t, err.Error(), "parse")
}

func TestGenerate_ModelErrorPropagates(t *testing.T) {
	llm := new(MockCompleter)
	upstream := &api.StatusError{Provider: "LLM", StatusCode: 500, Body: "boom"}
	llm.On("Complete", mock.Anything).Return("", upstream)

	_, err := newTestGenerator(llm, time.Now()).Generate(context.Background(), models.ItineraryRequest{})
	assert.Same(t, upstream, err)

	llm2 := new(MockCompleter)
	llm2.On("Complete", mock.Anything).Return("", api.ErrMissingAPIKey)
	_, err = newTestGenerator(llm2, time.Now()).Generate(context.Background(), models.ItineraryRequest{})
	assert.True(t, errors.Is(err, api.ErrMissingAPIKey))
}

func TestGenerate_CustomBudget(t *testing.T) {
	llm := new(MockCompleter)
	llm.On("Complete", mock.MatchedBy(func(req api.CompletionRequest) bool {
		return req.MaxTokens == 2000
	})).Return("[]", nil)

	g := NewItineraryGenerator(llm, WithMaxTokens(2000), WithItineraryLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	out, err := g.Generate(context.Background(), models.ItineraryRequest{})
	require.NoError(t, err)
	assert.Equal(t, []any{}, out.Activities)
}

func TestParseItineraryResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    any
		wantErr bool
	}{
		{name: "plain array", raw: `[{"day":1}]`, want: []any{map[string]any{"day": float64(1)}}},
		{name: "json fence", raw: "```json\n[1,2]\n```", want: []any{float64(1), float64(2)}},
		{name: "bare fence", raw: "```\n[3]\n```", want: []any{float64(3)}},
		{name: "surrounding whitespace", raw: "  \n```json [] ```\n ", want: []any{}},
		{name: "object is accepted", raw: `{"days":[]}`, want: map[string]any{"days": []any{}}},
		{name: "leading prose", raw: "Here you go:\n[1]", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "truncated", raw: `[{"day":1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseItineraryResponse(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrItineraryParse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseItineraryResponse_TruncatesSnippet(t *testing.T) {
	raw := "x" + strings.Repeat("y", 300)

	_, err := ParseItineraryResponse(raw)
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, raw[:200])
	assert.NotContains(t, msg, raw[:201])
}
