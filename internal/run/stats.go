package run

import "time"

// RepositoryInfo describes the tree a run processed.
type RepositoryInfo struct {
	URL            string         `json:"url"`
	LocalPath      string         `json:"local_path"`
	Branch         string         `json:"branch"`
	CommitHash     string         `json:"commit_hash,omitempty"`
	TotalFiles     int            `json:"total_files"`
	FilesByDialect map[string]int `json:"files_by_dialect"`
}

// ProcessingStats is the run telemetry returned to the caller. Warnings
// and errors are ordered and never dropped; a run always produces a stats
// object even when nothing was uploaded.
type ProcessingStats struct {
	Repository     RepositoryInfo `json:"repository"`
	ChunksCreated  int            `json:"chunks_created"`
	ChunksUploaded int            `json:"chunks_uploaded"`
	ProcessingTime time.Duration  `json:"processing_time"`
	Warnings       []string       `json:"warnings"`
	Errors         []string       `json:"errors"`
}

func newStats(url, localPath string) *ProcessingStats {
	return &ProcessingStats{
		Repository: RepositoryInfo{
			URL:            url,
			LocalPath:      localPath,
			Branch:         "main",
			FilesByDialect: make(map[string]int),
		},
	}
}
