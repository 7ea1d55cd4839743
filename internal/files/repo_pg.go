package files

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const fileColumns = `id, user_id, file_name, data_kind, domain, format, storage_key, size_bytes, num_samples, download_count, created_at, last_downloaded_at`

// Create inserts a new file record.
func (r *PGRepo) Create(ctx context.Context, file File) error {
	const query = `
INSERT INTO generated_files (
    id,
    user_id,
    file_name,
    data_kind,
    domain,
    format,
    storage_key,
    size_bytes,
    num_samples,
    download_count,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, $10)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		file.ID,
		file.UserID,
		file.FileName,
		file.DataKind,
		file.Domain,
		file.Format,
		file.StorageKey,
		file.SizeBytes,
		file.NumSamples,
		file.CreatedAt,
	)
	return err
}

// GetByOwner fetches a file by ID scoped to its owner.
func (r *PGRepo) GetByOwner(ctx context.Context, userID, fileID string) (File, error) {
	const query = `
SELECT ` + fileColumns + `
FROM generated_files
WHERE user_id = $1 AND id = $2
LIMIT 1`
	return scanFile(r.DB.QueryRowContext(ctx, query, userID, fileID))
}

// ListByOwner lists a user's files ordered newest-first.
func (r *PGRepo) ListByOwner(ctx context.Context, userID string) ([]File, error) {
	const query = `
SELECT ` + fileColumns + `
FROM generated_files
WHERE user_id = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []File
	for rows.Next() {
		var file File
		var lastDownloaded sql.NullTime
		if err := rows.Scan(
			&file.ID,
			&file.UserID,
			&file.FileName,
			&file.DataKind,
			&file.Domain,
			&file.Format,
			&file.StorageKey,
			&file.SizeBytes,
			&file.NumSamples,
			&file.DownloadCount,
			&file.CreatedAt,
			&lastDownloaded,
		); err != nil {
			return nil, err
		}
		if lastDownloaded.Valid {
			t := lastDownloaded.Time
			file.LastDownloadedAt = &t
		}
		out = append(out, file)
	}
	return out, rows.Err()
}

// Delete removes a file record scoped to its owner.
func (r *PGRepo) Delete(ctx context.Context, userID, fileID string) error {
	const query = `
DELETE FROM generated_files
WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userID, fileID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementDownloads bumps the counter in a single statement so concurrent
// downloads never lose an increment.
func (r *PGRepo) IncrementDownloads(ctx context.Context, userID, fileID string) (File, error) {
	const query = `
UPDATE generated_files
SET download_count = download_count + 1, last_downloaded_at = now()
WHERE user_id = $1 AND id = $2
RETURNING ` + fileColumns
	return scanFile(r.DB.QueryRowContext(ctx, query, userID, fileID))
}

// StatsByOwner aggregates the owner's registry with GROUP BY queries.
func (r *PGRepo) StatsByOwner(ctx context.Context, userID string) (Stats, error) {
	stats := Stats{
		ByKind:   make(map[string]int64),
		ByFormat: make(map[string]int64),
	}

	const totals = `
SELECT COUNT(*), COALESCE(SUM(download_count), 0)
FROM generated_files
WHERE user_id = $1`
	if err := r.DB.QueryRowContext(ctx, totals, userID).Scan(&stats.TotalFiles, &stats.TotalDownloads); err != nil {
		return Stats{}, err
	}

	const byKind = `
SELECT data_kind, COUNT(*)
FROM generated_files
WHERE user_id = $1
GROUP BY data_kind`
	if err := r.scanCounts(ctx, byKind, userID, stats.ByKind); err != nil {
		return Stats{}, err
	}

	const byFormat = `
SELECT format, COUNT(*)
FROM generated_files
WHERE user_id = $1
GROUP BY format`
	if err := r.scanCounts(ctx, byFormat, userID, stats.ByFormat); err != nil {
		return Stats{}, err
	}

	return stats, nil
}

func (r *PGRepo) scanCounts(ctx context.Context, query, userID string, dest map[string]int64) error {
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		dest[key] = count
	}
	return rows.Err()
}

func scanFile(row *sql.Row) (File, error) {
	var file File
	var lastDownloaded sql.NullTime
	err := row.Scan(
		&file.ID,
		&file.UserID,
		&file.FileName,
		&file.DataKind,
		&file.Domain,
		&file.Format,
		&file.StorageKey,
		&file.SizeBytes,
		&file.NumSamples,
		&file.DownloadCount,
		&file.CreatedAt,
		&lastDownloaded,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return File{}, ErrNotFound
		}
		return File{}, err
	}
	if lastDownloaded.Valid {
		t := lastDownloaded.Time
		file.LastDownloadedAt = &t
	}
	return file, nil
}

var _ Repo = (*PGRepo)(nil)
