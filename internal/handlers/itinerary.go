package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"trip-planner/internal/kafka"
	"trip-planner/internal/middleware"
	"trip-planner/internal/models"
	"trip-planner/internal/services"
)

type ItineraryGenerator interface {
	Generate(ctx context.Context, req models.ItineraryRequest) (*models.GeneratedItinerary, error)
}

type ItineraryStore interface {
	Save(ctx context.Context, it *models.GeneratedItinerary) error
}

type ItineraryHandler struct {
	generator ItineraryGenerator
	store     ItineraryStore
	events    kafka.ProducerInterface
	logger    *slog.Logger
}

func NewItineraryHandler(generator ItineraryGenerator, store ItineraryStore, events kafka.ProducerInterface, logger *slog.Logger) *ItineraryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ItineraryHandler{generator: generator, store: store, events: events, logger: logger}
}

type generateRequest struct {
	models.ItineraryRequest
	TripID int64 `json:"tripId" validate:"gte=0"`
	Day    int   `json:"day" validate:"gte=0"`
}

// POST /itineraries/generate
func (h *ItineraryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	it, err := h.generator.Generate(r.Context(), req.ItineraryRequest)
	if err != nil {
		userID, _ := middleware.GetUserIDFromContext(r)
		h.logger.Warn("itinerary generation failed",
			"user_id", userID,
			"parse_error", errors.Is(err, services.ErrItineraryParse),
			"error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	if req.TripID > 0 {
		it.TripID = req.TripID
		it.Day = req.Day
		it.GenerationID = uuid.NewString()
		if err := h.store.Save(r.Context(), it); err != nil {
			h.logger.Error("failed to save itinerary", "trip_id", it.TripID, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save itinerary")
			return
		}
		if h.events != nil {
			h.events.PublishObjectAsync([]byte(fmt.Sprintf("itinerary:%d:%d", it.TripID, it.Day)), it)
		}
	}

	writeJSON(w, http.StatusOK, it)
}
