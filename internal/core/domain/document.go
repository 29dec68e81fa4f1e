package domain

// MaxExtractedChars bounds the text kept per document after extraction.
// Longer content is silently truncated before it reaches the oracle.
const MaxExtractedChars = 100_000

// TruncateText bounds extracted text to MaxExtractedChars characters.
// Truncation is silent; no flag is recorded.
func TruncateText(s string) string {
	if len(s) <= MaxExtractedChars {
		return s
	}
	runes := []rune(s)
	if len(runes) <= MaxExtractedChars {
		return s
	}
	return string(runes[:MaxExtractedChars])
}

// ExtractionStatus is the finite outcome tag attached to a file
// after text extraction.
type ExtractionStatus string

const (
	// StatusOK indicates text was extracted successfully.
	StatusOK ExtractionStatus = "ok"

	// StatusUnsupportedFormat indicates the file extension has no extractor.
	StatusUnsupportedFormat ExtractionStatus = "unsupported-format"

	// StatusEncrypted indicates the document is password protected.
	StatusEncrypted ExtractionStatus = "encrypted"

	// StatusCorrupted indicates the container or content is malformed.
	StatusCorrupted ExtractionStatus = "corrupted"

	// StatusEmpty indicates extraction succeeded but produced no text
	// (e.g. an image-only PDF). Distinct from a hard failure.
	StatusEmpty ExtractionStatus = "empty"

	// StatusEncodingFailed indicates no decoder in the fallback chain
	// accepted the bytes. Practically unreachable with the Latin-1
	// terminal fallback, but modelled for completeness.
	StatusEncodingFailed ExtractionStatus = "encoding-failed"

	// StatusTimeout indicates the document was extracted but its batch
	// was never evaluated because the run deadline expired.
	StatusTimeout ExtractionStatus = "timeout"
)

// IsSkip reports whether the status counts toward the skipped total.
// StatusEmpty is a skip reason: it contributes to the skipped count so
// that scanned = extracted-ok + skipped always holds, but it is kept
// out of the report's error list.
func (s ExtractionStatus) IsSkip() bool {
	return s != StatusOK
}

// FileDescriptor identifies a candidate file produced by the scanner.
// It is immutable and discarded once extraction has run.
type FileDescriptor struct {
	// Path is the absolute path to the file.
	Path string

	// RelPath is the path relative to the scan root, used in reports
	// and oracle payloads.
	RelPath string

	// Ext is the lower-cased file extension, including the dot.
	Ext string

	// Size is the file size in bytes.
	Size int64
}

// ExtractedDocument is the result of running one file through the
// text extractor. One instance exists per scanned file; it is never
// mutated after creation, only consumed downstream.
type ExtractedDocument struct {
	// ID is the unique identifier used to merge oracle verdicts back
	// onto documents regardless of batch or arrival order.
	ID string

	// Path is the absolute path to the source file.
	Path string

	// RelPath is the path relative to the scan root.
	RelPath string

	// Text is the extracted text, truncated to MaxExtractedChars.
	// Empty unless Status is StatusOK.
	Text string

	// Status records the extraction outcome.
	Status ExtractionStatus

	// Reason holds a human-readable detail for non-ok statuses.
	Reason string
}
