package files

import "time"

// File is a generated dataset owned by a user.
type File struct {
	ID               string     `json:"id"`
	UserID           string     `json:"userId"`
	FileName         string     `json:"fileName"`
	DataKind         string     `json:"dataKind"`
	Domain           string     `json:"domain"`
	Format           string     `json:"format"`
	StorageKey       string     `json:"-"`
	SizeBytes        int64      `json:"sizeBytes"`
	NumSamples       int        `json:"numSamples"`
	DownloadCount    int64      `json:"downloadCount"`
	CreatedAt        time.Time  `json:"createdAt"`
	LastDownloadedAt *time.Time `json:"lastDownloadedAt,omitempty"`
}

// Stats aggregates a user's registry contents.
type Stats struct {
	TotalFiles       int64            `json:"total_files"`
	TotalDownloads   int64            `json:"total_downloads"`
	TotalGenerations int64            `json:"total_generations"`
	ByKind           map[string]int64 `json:"by_kind"`
	ByFormat         map[string]int64 `json:"by_format"`
}

// ContentType maps an output format to its MIME type.
func ContentType(format string) string {
	switch format {
	case "csv":
		return "text/csv"
	case "excel":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}
