package generation

import (
	"context"
	"database/sql"
)

// PGHistoryRepo implements HistoryRepo using Postgres.
type PGHistoryRepo struct {
	DB *sql.DB
}

// Create inserts a history record.
func (r *PGHistoryRepo) Create(ctx context.Context, record HistoryRecord) error {
	const query = `
INSERT INTO generation_history (id, user_id, data_kind, domain, topic, num_samples, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	var topic sql.NullString
	if record.Topic != "" {
		topic = sql.NullString{String: record.Topic, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		record.ID,
		record.UserID,
		record.DataKind,
		record.Domain,
		topic,
		record.NumSamples,
		record.CreatedAt,
	)
	return err
}

// CountByOwner counts a user's generation runs.
func (r *PGHistoryRepo) CountByOwner(ctx context.Context, userID string) (int64, error) {
	const query = `
SELECT COUNT(*)
FROM generation_history
WHERE user_id = $1`
	var count int64
	if err := r.DB.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ListByOwner lists a user's runs, newest first.
func (r *PGHistoryRepo) ListByOwner(ctx context.Context, userID string, limit int) ([]HistoryRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	const query = `
SELECT id, user_id, data_kind, domain, topic, num_samples, created_at
FROM generation_history
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryRecord
	for rows.Next() {
		var record HistoryRecord
		var topic sql.NullString
		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.DataKind,
			&record.Domain,
			&topic,
			&record.NumSamples,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		if topic.Valid {
			record.Topic = topic.String
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

var _ HistoryRepo = (*PGHistoryRepo)(nil)
