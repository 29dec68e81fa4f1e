package driven

import (
	"context"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
)

// Extractor converts one file format into plain text.
// Each extractor handles a fixed set of file extensions.
//
// Extract never fails with a Go error for per-file problems: every
// format-specific failure is folded into the returned document's
// Status. The error return is reserved for configuration-level
// failures (domain.ErrOCRUnavailable) that should abort the run when
// the capability is actually required.
type Extractor interface {
	// SupportedExtensions returns the lower-cased extensions this
	// extractor handles, including the leading dot.
	SupportedExtensions() []string

	// Extract reads the file and returns its text, truncated to
	// domain.MaxExtractedChars, with the extraction status set.
	Extract(ctx context.Context, fd domain.FileDescriptor) (domain.ExtractedDocument, error)
}

// ExtractorRegistry dispatches files to the extractor registered for
// their extension. Unknown extensions yield StatusUnsupportedFormat
// without opening the file.
type ExtractorRegistry interface {
	// Extract dispatches to the matching extractor.
	Extract(ctx context.Context, fd domain.FileDescriptor) (domain.ExtractedDocument, error)

	// Register adds an extractor for its supported extensions.
	Register(extractor Extractor)

	// SupportedExtensions returns all registered extensions.
	SupportedExtensions() []string
}
