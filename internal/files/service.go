package files

import (
	"context"
	"fmt"
	"io"

	"synthdata-backend/internal/shared/metrics"
	"synthdata-backend/internal/shared/storage/object"
	"synthdata-backend/internal/shared/telemetry"
)

// HistoryCounter reports how many generation runs a user has performed. The
// generation package provides the implementation.
type HistoryCounter interface {
	CountByOwner(ctx context.Context, userID string) (int64, error)
}

// Service implements listing, download, deletion, and stats for the registry.
type Service struct {
	Repo    Repo
	Store   object.ObjectStore
	History HistoryCounter
}

// List returns the user's files, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]File, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user", ErrInvalidInput)
	}
	return s.Repo.ListByOwner(ctx, userID)
}

// Download atomically records the download and opens the backing content.
// The counter is bumped before the content is streamed; a failed stream after
// a successful increment still counts as a download.
func (s *Service) Download(ctx context.Context, userID, fileID string) (File, io.ReadCloser, error) {
	if userID == "" || fileID == "" {
		return File{}, nil, fmt.Errorf("%w: missing identifier", ErrInvalidInput)
	}

	file, err := s.Repo.IncrementDownloads(ctx, userID, fileID)
	if err != nil {
		return File{}, nil, err
	}

	metrics.IncDownload()

	content, err := s.Store.Open(ctx, file.StorageKey)
	if err != nil {
		telemetry.Error("files.download.open_failed", map[string]any{
			"file_id": file.ID,
			"error":   err.Error(),
		})
		return File{}, nil, fmt.Errorf("%w: open content: %v", ErrStorage, err)
	}
	return file, content, nil
}

// Delete removes the record first, then the backing content. The record is
// the source of truth: once it is gone a repeat delete returns ErrNotFound,
// and a failed content removal can never leave a dangling record.
func (s *Service) Delete(ctx context.Context, userID, fileID string) error {
	if userID == "" || fileID == "" {
		return fmt.Errorf("%w: missing identifier", ErrInvalidInput)
	}

	file, err := s.Repo.GetByOwner(ctx, userID, fileID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, userID, fileID); err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, file.StorageKey); err != nil {
		telemetry.Error("files.delete.content_failed", map[string]any{
			"file_id":     file.ID,
			"storage_key": file.StorageKey,
			"error":       err.Error(),
		})
		return fmt.Errorf("%w: remove content: %v", ErrStorage, err)
	}
	return nil
}

// Stats recomputes the user's aggregate numbers from the registry.
func (s *Service) Stats(ctx context.Context, userID string) (Stats, error) {
	if userID == "" {
		return Stats{}, fmt.Errorf("%w: missing user", ErrInvalidInput)
	}

	stats, err := s.Repo.StatsByOwner(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	if s.History != nil {
		generations, err := s.History.CountByOwner(ctx, userID)
		if err != nil {
			return Stats{}, err
		}
		stats.TotalGenerations = generations
	}
	return stats, nil
}
