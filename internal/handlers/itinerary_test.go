package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trip-planner/internal/models"
	"trip-planner/internal/services"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req models.ItineraryRequest) (*models.GeneratedItinerary, error) {
	args := m.Called(req)
	it, _ := args.Get(0).(*models.GeneratedItinerary)
	return it, args.Error(1)
}

type memoryStore struct {
	saved []*models.GeneratedItinerary
	err   error
}

func (s *memoryStore) Save(_ context.Context, it *models.GeneratedItinerary) error {
	if s.err != nil {
		return s.err
	}
	it.ID = int64(len(s.saved) + 1)
	s.saved = append(s.saved, it)
	return nil
}

type eventLog struct {
	mu   sync.Mutex
	keys []string
}

func (e *eventLog) PublishObjectAsync(key []byte, obj interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.keys = append(e.keys, string(key))
}

func generated() *models.GeneratedItinerary {
	return &models.GeneratedItinerary{Date: time.Now(), Activities: []any{}}
}

func TestItineraryHandler_GenerateOnly(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", models.ItineraryRequest{Destination: "Rome"}).Return(generated(), nil)
	store, events := &memoryStore{}, &eventLog{}
	h := NewItineraryHandler(gen, store, events, discard())

	w := httptest.NewRecorder()
	h.Generate(w, httptest.NewRequest(http.MethodPost, "/itineraries/generate", strings.NewReader(`{"destination":"Rome"}`)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tripId":0`)
	assert.Empty(t, store.saved)
	assert.Empty(t, events.keys)
}

func TestItineraryHandler_PersistsForTrip(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything).Return(generated(), nil)
	store, events := &memoryStore{}, &eventLog{}
	h := NewItineraryHandler(gen, store, events, discard())

	body := `{"destination":"Rome","startDate":"2024-06-01","tripId":7,"day":2}`
	w := httptest.NewRecorder()
	h.Generate(w, httptest.NewRequest(http.MethodPost, "/itineraries/generate", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.saved, 1)
	assert.Equal(t, int64(7), store.saved[0].TripID)
	assert.Equal(t, 2, store.saved[0].Day)
	assert.NotEmpty(t, store.saved[0].GenerationID)
	assert.Equal(t, []string{"itinerary:7:2"}, events.keys)
}

func TestItineraryHandler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		genErr   error
		storeErr error
		want     int
	}{
		{name: "bad json", body: `{`, want: http.StatusBadRequest},
		{name: "bad date", body: `{"startDate":"June 1"}`, want: http.StatusBadRequest},
		{name: "negative day", body: `{"day":-1}`, want: http.StatusBadRequest},
		{name: "parse failure", body: `{}`, genErr: fmt.Errorf("%w: boom", services.ErrItineraryParse), want: http.StatusBadGateway},
		{name: "model failure", body: `{}`, genErr: assert.AnError, want: http.StatusBadGateway},
		{name: "store failure", body: `{"tripId":3}`, storeErr: assert.AnError, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(MockGenerator)
			if tt.genErr != nil {
				gen.On("Generate", mock.Anything).Return(nil, tt.genErr)
			} else {
				gen.On("Generate", mock.Anything).Return(generated(), nil)
			}
			h := NewItineraryHandler(gen, &memoryStore{err: tt.storeErr}, nil, discard())

			w := httptest.NewRecorder()
			h.Generate(w, httptest.NewRequest(http.MethodPost, "/itineraries/generate", strings.NewReader(tt.body)))

			assert.Equal(t, tt.want, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}
