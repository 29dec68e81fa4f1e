package driven

import (
	"context"
	"time"
)

// RunRecord is a persisted summary of one completed search run.
// Only run metadata is stored; extracted text is never cached, so
// every invocation remains a full single-pass search.
type RunRecord struct {
	// ID is the unique run identifier.
	ID string

	// Query is the search query.
	Query string

	// Root is the scanned folder.
	Root string

	// Scanned, ExtractedOK, Skipped and Matched mirror the run stats.
	Scanned     int
	ExtractedOK int
	Skipped     int
	Matched     int

	// MatchedPaths lists the matched files in report order.
	MatchedPaths []string

	// ReportPath is where the report was written.
	ReportPath string

	// StartedAt is when the run began, in UTC.
	StartedAt time.Time
}

// RunHistoryStore persists summaries of completed runs.
type RunHistoryStore interface {
	// Save records a completed run.
	Save(ctx context.Context, rec RunRecord) error

	// List returns the most recent runs, newest first.
	List(ctx context.Context, limit int) ([]RunRecord, error)

	// Close releases resources.
	Close() error
}
