// Package image extracts text from image files by delegating to the
// configured OCR engine.
package image

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
	"github.com/custodia-labs/docscout-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles image documents via OCR.
type Extractor struct {
	engine driven.OCREngine
}

// New creates a new image extractor backed by the given OCR engine.
func New(engine driven.OCREngine) *Extractor {
	return &Extractor{engine: engine}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".jpg", ".jpeg", ".png"}
}

// Extract runs OCR over the image. A missing engine is a
// configuration-level failure surfaced as an error, not a per-file
// skip; the pipeline checks availability before extraction begins.
func (e *Extractor) Extract(ctx context.Context, fd domain.FileDescriptor) (domain.ExtractedDocument, error) {
	doc := domain.ExtractedDocument{
		ID:      uuid.New().String(),
		Path:    fd.Path,
		RelPath: fd.RelPath,
	}

	if e.engine == nil {
		return doc, domain.ErrOCRUnavailable
	}
	if err := e.engine.Available(); err != nil {
		return doc, err
	}

	text, err := e.engine.Recognise(ctx, fd.Path)
	if err != nil {
		doc.Status = domain.StatusCorrupted
		doc.Reason = "OCR failed: " + err.Error()
		return doc, nil
	}

	if strings.TrimSpace(text) == "" {
		doc.Status = domain.StatusEmpty
		doc.Reason = "no text could be extracted from image"
		return doc, nil
	}

	doc.Status = domain.StatusOK
	doc.Text = domain.TruncateText(text)
	return doc, nil
}
