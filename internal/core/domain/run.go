package domain

import "time"

// RunStats accumulates end-to-end accounting for a search run.
// Invariants, enforced by the pipeline and checked in tests:
//
//	Scanned = ExtractedOK + Skipped
//	Matched <= ExtractedOK
type RunStats struct {
	// Scanned is the number of candidate files the scanner yielded.
	Scanned int

	// ExtractedOK is the number of files whose extraction returned ok
	// and that were evaluated (or eligible for evaluation).
	ExtractedOK int

	// Skipped is the number of files excluded with a recorded reason.
	Skipped int

	// Matched is the number of documents at or above the threshold.
	Matched int
}

// SkipRecord notes one file excluded from evaluation and why.
type SkipRecord struct {
	// RelPath is the file path relative to the scan root.
	RelPath string

	// Status is the extraction outcome that caused the skip.
	Status ExtractionStatus

	// Reason is the human-readable detail.
	Reason string
}

// Match pairs a document with its verdict. Only documents meeting the
// relevance threshold become matches.
type Match struct {
	Document ExtractedDocument
	Verdict  RelevanceVerdict

	// ScanIndex is the document's position in scan order, used as the
	// stable tie-break when scores are equal.
	ScanIndex int
}

// SearchRun is the complete, finalised result of one pipeline
// invocation. It is built incrementally during the run, finalised once
// by the aggregator, and immutable thereafter.
type SearchRun struct {
	// Query is the natural-language search query.
	Query string

	// Root is the absolute path of the scanned folder.
	Root string

	// StartedAt is when the run began, in UTC.
	StartedAt time.Time

	// Threshold is the minimum score for inclusion in Matches.
	Threshold int

	// Stats holds the final counts.
	Stats RunStats

	// Matches are the surviving documents, sorted by descending score
	// with scan order as the stable tie-break.
	Matches []Match

	// Skips lists every skipped file and its reason, in scan order.
	// Entries with StatusEmpty are counted but omitted from the
	// report's error list.
	Skips []SkipRecord

	// Warnings are run-level degradations (failed oracle batches,
	// expired deadlines) that did not abort the run.
	Warnings []string
}
