package docmirror

import (
	"context"
	"time"
)

// Run represents one crawl of a documentation site recorded in the manifest.
type Run struct {
	ID         string    `json:"id"`
	BaseURL    string    `json:"baseUrl"`
	Strategy   string    `json:"strategy"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Stats      RunStats  `json:"stats"`
}

// PageRecord describes the outcome of one target within a run.
type PageRecord struct {
	RunID       string    `json:"runId"`
	URL         string    `json:"url"`
	Path        string    `json:"path"`
	ContentHash string    `json:"contentHash"`
	Outcome     string    `json:"outcome"`
	Error       string    `json:"error"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *PageRecord) Validate() error {
	if r.RunID == "" {
		return Errorf(EINVALID, "page record run ID required")
	}
	if r.URL == "" {
		return Errorf(EINVALID, "page record URL required")
	}
	return nil
}

// ManifestService records crawl runs and per-page outcomes. The manifest is
// optional supporting state for resumability and reporting; the mirrored
// files themselves carry no sidecar metadata.
type ManifestService interface {
	// BeginRun records the start of a run and assigns its ID.
	BeginRun(ctx context.Context, run *Run) error

	// RecordPage records the outcome of one target.
	RecordPage(ctx context.Context, rec *PageRecord) error

	// FinishRun stores final statistics and the completion time.
	// Returns ENOTFOUND if the run does not exist.
	FinishRun(ctx context.Context, runID string, stats RunStats) error

	// FindPagesByRun retrieves all page records for a run.
	FindPagesByRun(ctx context.Context, runID string) ([]*PageRecord, error)
}
