package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"trip-planner/internal/models"
)

type RequestLogRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewRequestLogRepository(db *sql.DB, logger *slog.Logger) *RequestLogRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &RequestLogRepository{db: db, logger: logger}
}

func (r *RequestLogRepository) Save(ctx context.Context, entry models.RequestLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO request_log (kind, args, created_at)
		VALUES ($1, $2, $3)
	`, entry.Kind, entry.Args, entry.CreatedAt)
	return err
}

const topExchangePairsQuery = `
SELECT 'exchange' AS kind,
       jsonb_build_object('from', args->>'from', 'to', args->>'to') AS args,
       COUNT(*) AS cnt
FROM request_log
WHERE kind = 'exchange'
  AND created_at >= NOW() - INTERVAL '24 hours'
  AND args ? 'from' AND args ? 'to'
GROUP BY args->>'from', args->>'to'
ORDER BY cnt DESC
LIMIT $1`

// GetTopRequests returns the most requested currency pairs of the last 24h.
func (r *RequestLogRepository) GetTopRequests(ctx context.Context, limit int) ([]models.PopularRequest, error) {
	rows, err := r.db.QueryContext(ctx, topExchangePairsQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []models.PopularRequest
	for rows.Next() {
		var (
			kind     string
			argsJSON []byte
			cnt      int
		)
		if err := rows.Scan(&kind, &argsJSON, &cnt); err != nil {
			return nil, err
		}

		var args models.RequestArgs
		if err := json.Unmarshal(argsJSON, &args); err != nil {
			r.logger.Warn("skipping request log row with bad args", "error", err)
			continue
		}
		top = append(top, models.PopularRequest{Kind: kind, Args: args})
	}
	return top, rows.Err()
}
