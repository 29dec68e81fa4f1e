// Package spreadsheet extracts text from Excel workbooks. XLSX files
// are read with excelize; legacy XLS files with the extrame/xls
// reader. Both render each sheet as a "Sheet: <name>" header followed
// by rows of non-empty cells joined with " | ", in sheet order.
package spreadsheet

import (
	"context"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
	"github.com/custodia-labs/docscout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docscout-cli/internal/extractors/docx"
)

// Ensure XLSX implements the interface.
var _ driven.Extractor = (*XLSX)(nil)

// XLSX handles OOXML Excel workbooks.
type XLSX struct{}

// NewXLSX creates a new XLSX extractor.
func NewXLSX() *XLSX {
	return &XLSX{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *XLSX) SupportedExtensions() []string {
	return []string{".xlsx"}
}

// Extract concatenates cell text across all sheets in sheet order.
func (e *XLSX) Extract(_ context.Context, fd domain.FileDescriptor) (domain.ExtractedDocument, error) {
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

	// Encrypted OOXML workbooks are wrapped in a CFB container.
	if docx.IsOLEContainer(header[:n]) {
		doc.Status = domain.StatusEncrypted
		doc.Reason = domain.ErrEncrypted.Error()
		return doc, nil
	}

	wb, err := excelize.OpenFile(fd.Path)
	if err != nil {
		doc.Status = domain.StatusCorrupted
		doc.Reason = "invalid XLSX workbook"
		return doc, nil
	}
	defer wb.Close()

	var sheets []string
	for _, name := range wb.GetSheetList() {
		rows, err := wb.GetRows(name)
		if err != nil {
			continue
		}

		var rendered []string
		for _, row := range rows {
			if line := renderRow(row); line != "" {
				rendered = append(rendered, line)
			}
		}
		if len(rendered) > 0 {
			sheets = append(sheets, "Sheet: "+name+"\n"+strings.Join(rendered, "\n"))
		}
	}

	if len(sheets) == 0 {
		doc.Status = domain.StatusEmpty
		doc.Reason = "no data found in workbook"
		return doc, nil
	}

	doc.Status = domain.StatusOK
	doc.Text = domain.TruncateText(strings.Join(sheets, "\n\n"))
	return doc, nil
}

// renderRow joins the non-empty cells of a row with " | ".
// Returns "" for rows with no content.
func renderRow(cells []string) string {
	var kept []string
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell != "" {
			kept = append(kept, cell)
		}
	}
	return strings.Join(kept, " | ")
}
