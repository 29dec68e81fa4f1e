package driven

import "context"

// OCREngine extracts text from image files. It is treated as a
// black-box oracle: the pipeline only decides which files to send and
// how to classify the result.
//
// Availability is a configuration concern, not a per-file one: an
// engine that is not installed returns domain.ErrOCRUnavailable from
// Available, and the pipeline fails fast only if the scan actually
// contains image files.
type OCREngine interface {
	// Recognise runs OCR over the image at path and returns the text.
	Recognise(ctx context.Context, path string) (string, error)

	// Available reports whether the engine can run at all.
	Available() error
}
