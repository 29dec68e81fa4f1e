// Package legacydoc extracts text from legacy Word .doc files by
// delegating to an external converter: antiword, catdoc, or a headless
// LibreOffice conversion, in that order.
package legacydoc

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
	"github.com/custodia-labs/docscout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docscout-cli/internal/extractors/docx"
)

// converterTimeout bounds a single external conversion.
const converterTimeout = 60 * time.Second

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles legacy .doc documents.
type Extractor struct {
	// lookPath is swapped in tests to simulate missing converters.
	lookPath func(name string) (string, error)

	// runConverter is swapped in tests to avoid real conversions.
	runConverter func(ctx context.Context, tool, path string) (string, error)
}

// New creates a new legacy .doc extractor.
func New() *Extractor {
	return &Extractor{
		lookPath:     exec.LookPath,
		runConverter: runConverter,
	}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".doc"}
}

// Extract converts the file with the first available converter.
// A .doc file that is not an OLE compound document is corrupted; a
// machine with no converter installed yields a per-file skip rather
// than aborting the run.
func (e *Extractor) Extract(ctx context.Context, fd domain.FileDescriptor) (domain.ExtractedDocument, error) {
	doc := domain.ExtractedDocument{
		ID:      uuid.New().String(),
		Path:    fd.Path,
		RelPath: fd.RelPath,
	}

	header := make([]byte, 8)
	f, err := os.Open(fd.Path)
	if err != nil {
		doc.Status = domain.StatusCorrupted
		doc.Reason = err.Error()
		return doc, nil
	}
	n, _ := f.Read(header)
	f.Close()

	if !docx.IsOLEContainer(header[:n]) {
		doc.Status = domain.StatusCorrupted
		doc.Reason = "not an OLE compound document"
		return doc, nil
	}

	tried := false
	for _, tool := range []string{"antiword", "catdoc", "soffice", "libreoffice"} {
		if _, err := e.lookPath(tool); err != nil {
			continue
		}
		tried = true

		text, err := e.runConverter(ctx, tool, fd.Path)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) == "" {
			doc.Status = domain.StatusEmpty
			doc.Reason = domain.ErrEmptyDocument.Error()
			return doc, nil
		}
		doc.Status = domain.StatusOK
		doc.Text = domain.TruncateText(text)
		return doc, nil
	}

	doc.Status = domain.StatusCorrupted
	if tried {
		doc.Reason = "all .doc converters failed"
	} else {
		doc.Reason = "no .doc converter available (install antiword, catdoc or LibreOffice)"
	}
	return doc, nil
}

// runConverter invokes one external tool and returns the extracted text.
func runConverter(ctx context.Context, tool, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, converterTimeout)
	defer cancel()

	switch tool {
	case "soffice", "libreoffice":
		return convertWithLibreOffice(ctx, tool, path)
	default:
		out, err := exec.CommandContext(ctx, tool, path).Output()
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}

// convertWithLibreOffice converts the document to a text file in a
// temporary directory and reads it back.
func convertWithLibreOffice(ctx context.Context, tool, path string) (string, error) {
	outDir, err := os.MkdirTemp("", "docscout-doc-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(outDir)

	cmd := exec.CommandContext(ctx, tool, "--headless", "--convert-to", "txt:Text", "--outdir", outDir, path)
	if err := cmd.Run(); err != nil {
		return "", err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	converted, err := os.ReadFile(filepath.Join(outDir, base+".txt"))
	if err != nil {
		return "", err
	}
	return string(converted), nil
}
