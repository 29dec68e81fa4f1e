package extractors

import (
	"github.com/custodia-labs/docscout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docscout-cli/internal/extractors/docx"
	"github.com/custodia-labs/docscout-cli/internal/extractors/image"
	"github.com/custodia-labs/docscout-cli/internal/extractors/legacydoc"
	"github.com/custodia-labs/docscout-cli/internal/extractors/pdf"
	"github.com/custodia-labs/docscout-cli/internal/extractors/plaintext"
	"github.com/custodia-labs/docscout-cli/internal/extractors/spreadsheet"
)

// NewDefaultRegistry creates a registry with all built-in extractors.
// The OCR engine backs the image extractor; it may be a stub, in which
// case the pipeline fails fast only when image files are present.
func NewDefaultRegistry(ocr driven.OCREngine) *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(docx.New())
	r.Register(legacydoc.New())
	r.Register(pdf.New())
	r.Register(spreadsheet.NewXLSX())
	r.Register(spreadsheet.NewXLS())
	r.Register(image.New(ocr))
	return r
}
