package services

import (
	"bytes"
	"encoding/json"
	"strings"

	"trip-planner/internal/models"
)

const (
	promptOpening     = "Create a day-by-day itinerary for a trip"
	promptInstruction = ". Return a JSON array of days. Each day must contain a list of activities, " +
		"and each activity must have: title, start, end, location name, lat, lng, estimated cost. " +
		"Output only JSON."
)

// BuildItineraryPrompt is deterministic: equal requests give byte-identical prompts.
func BuildItineraryPrompt(req models.ItineraryRequest) string {
	var b strings.Builder
	b.WriteString(promptOpening)

	if req.Title != "" {
		b.WriteString(` called "`)
		b.WriteString(req.Title)
		b.WriteString(`"`)
	}
	if req.Destination != "" {
		b.WriteString(" to ")
		b.WriteString(req.Destination)
	}
	if req.StartDate != "" && req.EndDate != "" {
		b.WriteString(" from ")
		b.WriteString(req.StartDate)
		b.WriteString(" to ")
		b.WriteString(req.EndDate)
	}
	if prefs := compactPreferences(req.Preferences); prefs != "" {
		b.WriteString(". Preferences: ")
		b.WriteString(prefs)
	}

	b.WriteString(promptInstruction)
	return b.String()
}

func compactPreferences(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return string(trimmed)
	}
	return buf.String()
}
