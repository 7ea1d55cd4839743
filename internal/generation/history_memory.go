package generation

import (
	"context"
	"sort"
	"sync"
)

// MemoryHistoryRepo stores history records in memory and is safe for
// concurrent use.
type MemoryHistoryRepo struct {
	mu    sync.RWMutex
	items []HistoryRecord
}

// NewMemoryHistoryRepo constructs a MemoryHistoryRepo.
func NewMemoryHistoryRepo() *MemoryHistoryRepo {
	return &MemoryHistoryRepo{}
}

// Create stores the record.
func (r *MemoryHistoryRepo) Create(ctx context.Context, record HistoryRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, record)
	return nil
}

// CountByOwner counts a user's generation runs.
func (r *MemoryHistoryRepo) CountByOwner(ctx context.Context, userID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, record := range r.items {
		if record.UserID == userID {
			count++
		}
	}
	return count, nil
}

// ListByOwner lists a user's runs, newest first.
func (r *MemoryHistoryRepo) ListByOwner(ctx context.Context, userID string, limit int) ([]HistoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []HistoryRecord
	for _, record := range r.items {
		if record.UserID == userID {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ HistoryRepo = (*MemoryHistoryRepo)(nil)
