package generation

import "context"

// HistoryRepo persists completed generation runs.
type HistoryRepo interface {
	Create(ctx context.Context, record HistoryRecord) error
	CountByOwner(ctx context.Context, userID string) (int64, error)
	ListByOwner(ctx context.Context, userID string, limit int) ([]HistoryRecord, error)
}
