// Package pdf extracts text from fixed-layout PDF documents in page
// order using github.com/ledongthuc/pdf.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	pdflib "github.com/ledongthuc/pdf"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
	"github.com/custodia-labs/docscout-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF documents.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Extract pulls text from every page in order. A document whose pages
// yield zero extractable characters is empty, not an error: image-only
// scans are common and distinguishable from a hard failure.
func (e *Extractor) Extract(_ context.Context, fd domain.FileDescriptor) (domain.ExtractedDocument, error) {
	doc := domain.ExtractedDocument{
		ID:      uuid.New().String(),
		Path:    fd.Path,
		RelPath: fd.RelPath,
	}

	text, err := readAllPages(fd.Path)
	switch {
	case errors.Is(err, pdflib.ErrInvalidPassword):
		doc.Status = domain.StatusEncrypted
		doc.Reason = domain.ErrEncrypted.Error()
		return doc, nil
	case err != nil:
		doc.Status = domain.StatusCorrupted
		doc.Reason = err.Error()
		return doc, nil
	}

	if strings.TrimSpace(text) == "" {
		doc.Status = domain.StatusEmpty
		doc.Reason = "no text content found (may be image-only PDF)"
		return doc, nil
	}

	doc.Status = domain.StatusOK
	doc.Text = domain.TruncateText(text)
	return doc, nil
}

// readAllPages opens the document and concatenates page text.
// The pdf library panics on some malformed files; the recover turns
// those into a corrupted-document error instead of killing the run.
func readAllPages(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	// Try the empty password first, matching common producer defaults.
	reader, err := pdflib.NewReaderEncrypted(f, info.Size(), func() string { return "" })
	if err != nil {
		return "", err
	}

	var parts []string
	for num := 1; num <= reader.NumPage(); num++ {
		page := reader.Page(num)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Skip problematic pages but keep going.
			continue
		}
		if strings.TrimSpace(pageText) != "" {
			parts = append(parts, pageText)
		}
	}

	return strings.Join(parts, "\n\n"), nil
}
