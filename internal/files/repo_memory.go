package files

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores file records in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]File
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[string]File)}
}

// Create stores the file record.
func (r *MemoryRepo) Create(ctx context.Context, file File) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[file.ID] = file
	return nil
}

// GetByOwner fetches a file by ID scoped to its owner.
func (r *MemoryRepo) GetByOwner(ctx context.Context, userID, fileID string) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	file, ok := r.items[fileID]
	if !ok || file.UserID != userID {
		return File{}, ErrNotFound
	}
	return file, nil
}

// ListByOwner lists a user's files ordered newest-first.
func (r *MemoryRepo) ListByOwner(ctx context.Context, userID string) ([]File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []File
	for _, file := range r.items {
		if file.UserID == userID {
			out = append(out, file)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a file record scoped to its owner.
func (r *MemoryRepo) Delete(ctx context.Context, userID, fileID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	file, ok := r.items[fileID]
	if !ok || file.UserID != userID {
		return ErrNotFound
	}
	delete(r.items, fileID)
	return nil
}

// IncrementDownloads bumps the counter under the write lock.
func (r *MemoryRepo) IncrementDownloads(ctx context.Context, userID, fileID string) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	file, ok := r.items[fileID]
	if !ok || file.UserID != userID {
		return File{}, ErrNotFound
	}
	file.DownloadCount++
	now := time.Now().UTC()
	file.LastDownloadedAt = &now
	r.items[fileID] = file
	return file, nil
}

// StatsByOwner aggregates the owner's registry with a full scan.
func (r *MemoryRepo) StatsByOwner(ctx context.Context, userID string) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := Stats{
		ByKind:   make(map[string]int64),
		ByFormat: make(map[string]int64),
	}
	for _, file := range r.items {
		if file.UserID != userID {
			continue
		}
		stats.TotalFiles++
		stats.TotalDownloads += file.DownloadCount
		stats.ByKind[file.DataKind]++
		stats.ByFormat[file.Format]++
	}
	return stats, nil
}

var _ Repo = (*MemoryRepo)(nil)
