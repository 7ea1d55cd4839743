package files

import "context"

// Repo defines persistence operations for the file registry. Every lookup is
// owner-scoped; a file belonging to someone else is indistinguishable from one
// that does not exist.
type Repo interface {
	Create(ctx context.Context, file File) error
	GetByOwner(ctx context.Context, userID, fileID string) (File, error)
	ListByOwner(ctx context.Context, userID string) ([]File, error)
	Delete(ctx context.Context, userID, fileID string) error

	// IncrementDownloads bumps the download counter and stamps the download
	// time in a single atomic statement, returning the updated row.
	IncrementDownloads(ctx context.Context, userID, fileID string) (File, error)

	// StatsByOwner aggregates the owner's registry. TotalGenerations is left
	// zero; the service fills it from the generation history.
	StatsByOwner(ctx context.Context, userID string) (Stats, error)
}
