package models

import (
	"encoding/json"
	"time"
)

// ItineraryRequest is the input to prompt construction. Every field is optional.
type ItineraryRequest struct {
	Title       string          `json:"title,omitempty"`
	StartDate   string          `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string          `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Destination string          `json:"destination,omitempty"`
	Preferences json.RawMessage `json:"preferences,omitempty"`
}

// Activity is the shape the model is asked to produce. The generator does
// not validate against it; it is used when rendering stored itineraries.
type Activity struct {
	Title         string  `json:"title"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	LocationName  string  `json:"locationName"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	EstimatedCost float64 `json:"estimatedCost"`
}

// GeneratedItinerary wraps the parsed model output. TripID and Day are 0
// until the caller assigns them.
type GeneratedItinerary struct {
	ID           int64     `json:"id,omitempty"`
	GenerationID string    `json:"generationId,omitempty"`
	TripID       int64     `json:"tripId"`
	Day          int       `json:"day"`
	Date         time.Time `json:"date"`
	Activities   any       `json:"activities"`
	Notes        *string   `json:"notes"`
}
