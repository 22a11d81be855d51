package db

import (
	"context"
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS request_log (
	id         BIGSERIAL PRIMARY KEY,
	kind       TEXT NOT NULL,
	args       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS request_log_kind_created_idx ON request_log (kind, created_at);

CREATE TABLE IF NOT EXISTS generated_itineraries (
	id            BIGSERIAL PRIMARY KEY,
	generation_id UUID NOT NULL,
	trip_id       BIGINT NOT NULL,
	day           INT NOT NULL,
	date          TIMESTAMPTZ NOT NULL,
	activities    JSONB NOT NULL,
	notes         TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS generated_itineraries_trip_idx ON generated_itineraries (trip_id, day);
`

// EnsureSchema is idempotent and runs on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
