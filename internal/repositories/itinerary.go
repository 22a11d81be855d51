package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"trip-planner/internal/models"
)

type ItineraryRepository struct {
	db *sql.DB
}

func NewItineraryRepository(db *sql.DB) *ItineraryRepository {
	return &ItineraryRepository{db: db}
}

// Save persists an itinerary whose TripID and Day were assigned by the caller.
func (r *ItineraryRepository) Save(ctx context.Context, it *models.GeneratedItinerary) error {
	if it.TripID <= 0 {
		return fmt.Errorf("invalid trip id: %d", it.TripID)
	}
	activities, err := json.Marshal(it.Activities)
	if err != nil {
		return fmt.Errorf("marshal activities: %w", err)
	}

	return r.db.QueryRowContext(ctx, `
		INSERT INTO generated_itineraries (generation_id, trip_id, day, date, activities, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, it.GenerationID, it.TripID, it.Day, it.Date, activities, it.Notes).Scan(&it.ID)
}

func (r *ItineraryRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.GeneratedItinerary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, generation_id, trip_id, day, date, activities, notes
		FROM generated_itineraries
		WHERE trip_id = $1
		ORDER BY day, id
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.GeneratedItinerary
	for rows.Next() {
		var (
			it         models.GeneratedItinerary
			activities []byte
			notes      sql.NullString
		)
		if err := rows.Scan(&it.ID, &it.GenerationID, &it.TripID, &it.Day, &it.Date, &activities, &notes); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(activities, &it.Activities); err != nil {
			return nil, fmt.Errorf("itinerary %d: %w", it.ID, err)
		}
		if notes.Valid {
			it.Notes = &notes.String
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
