package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFolderNotFound indicates the scan root does not exist or is
	// not a directory. This is the only scanner error that aborts a run.
	ErrFolderNotFound = errors.New("folder not found")

	// ErrUnsupportedFormat indicates a file extension with no extractor.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrEncrypted indicates a password-protected document.
	ErrEncrypted = errors.New("document is encrypted")

	// ErrCorrupted indicates a malformed document container.
	ErrCorrupted = errors.New("document is corrupted")

	// ErrEncodingFailed indicates no decoder accepted the file bytes.
	ErrEncodingFailed = errors.New("could not decode file with any encoding")

	// ErrEmptyDocument indicates extraction produced no text.
	ErrEmptyDocument = errors.New("no text content found")

	// ErrOracleUnavailable indicates the relevance oracle is not
	// configured. Runs cannot start without it.
	ErrOracleUnavailable = errors.New("relevance oracle unavailable")

	// ErrOCRUnavailable indicates the OCR engine is not available.
	// Fatal only when the scan actually contains image files.
	ErrOCRUnavailable = errors.New("OCR engine unavailable")
)
