package driven

import (
	"context"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
)

// BatchDocument is one entry in an oracle request. Text is already
// truncated by the extractor; the adapter may bound it further when
// building the prompt.
type BatchDocument struct {
	// ID is the document identity used to merge verdicts back.
	ID string

	// RelPath is the path shown to the oracle, relative to the root.
	RelPath string

	// Text is the extracted document text.
	Text string
}

// RelevanceOracle scores a batch of documents against a query and
// returns structured verdicts.
//
// The oracle is an external reasoning service. Implementations may
// include:
//   - OpenAI (chat completions with JSON response mode)
//   - Anthropic (messages API)
//   - a deterministic stub for tests
//
// Documents omitted from the response are treated as score 0. The
// orchestrator performs no retries; a batch-level failure degrades
// that batch to "no matches".
type RelevanceOracle interface {
	// EvaluateBatch submits one batch and returns per-document verdicts.
	EvaluateBatch(ctx context.Context, query string, docs []BatchDocument) ([]domain.RelevanceVerdict, error)

	// ModelName returns the backing model identifier, for reports.
	ModelName() string
}
