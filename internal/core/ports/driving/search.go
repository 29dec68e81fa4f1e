package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
)

// SearchOptions configures a pipeline run.
type SearchOptions struct {
	// BatchSize is the number of documents per oracle request.
	// Defaults to 5.
	BatchSize int

	// MaxDocs caps the number of candidate files collected by the
	// scanner. Defaults to 50.
	MaxDocs int

	// Threshold is the minimum relevance score for a match.
	// Defaults to domain.DefaultRelevanceThreshold.
	Threshold int

	// ExtractConcurrency bounds parallel file extraction.
	// Defaults to 4.
	ExtractConcurrency int

	// BatchConcurrency bounds parallel oracle requests.
	// Defaults to 1 (sequential batches).
	BatchConcurrency int

	// Timeout bounds the whole run. Zero means no limit. When the
	// deadline expires, unstarted batches are abandoned and their
	// documents reclassified skipped(timeout); the report is still
	// finalised from whatever completed.
	Timeout time.Duration

	// Progress receives pipeline events. Optional; nil runs headless.
	Progress ProgressSink
}

// ProgressSink observes pipeline progress. It is a cross-cutting
// concern kept out of the pipeline logic so services stay testable
// without captured output. Implementations must be safe for
// concurrent use; extraction and batch events fire from worker
// goroutines.
type ProgressSink interface {
	// ScanComplete reports the number of candidate files found.
	ScanComplete(found int)

	// FileExtracted reports one finished extraction. index is the
	// file's scan position; events may arrive out of order when
	// extraction runs concurrently.
	FileExtracted(index, total int, doc domain.ExtractedDocument)

	// BatchComplete reports one finished oracle batch and the total
	// number of documents processed so far.
	BatchComplete(batch, batches, docsProcessed int)
}

// SearchPipeline runs the full scan → extract → evaluate → aggregate
// pipeline and returns the finalised run.
type SearchPipeline interface {
	// Search executes one single-pass search over root.
	Search(ctx context.Context, root, query string, opts SearchOptions) (*domain.SearchRun, error)
}
