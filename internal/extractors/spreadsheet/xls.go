package spreadsheet

import (
	"context"
	"strings"

	"github.com/extrame/xls"
	"github.com/google/uuid"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
	"github.com/custodia-labs/docscout-cli/internal/core/ports/driven"
)

// Ensure XLS implements the interface.
var _ driven.Extractor = (*XLS)(nil)

// XLS handles legacy BIFF Excel workbooks.
type XLS struct{}

// NewXLS creates a new legacy XLS extractor.
func NewXLS() *XLS {
	return &XLS{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *XLS) SupportedExtensions() []string {
	return []string{".xls"}
}

// Extract concatenates cell text across all sheets in sheet order.
// Password-protected workbooks fail to open; the reader gives no way
// to tell protection from damage, so both map to corrupted.
func (e *XLS) Extract(_ context.Context, fd domain.FileDescriptor) (doc domain.ExtractedDocument, _ error) {
	doc = domain.ExtractedDocument{
		ID:      uuid.New().String(),
		Path:    fd.Path,
		RelPath: fd.RelPath,
	}

	// The xls reader panics on some malformed BIFF streams.
	defer func() {
		if r := recover(); r != nil {
			doc.Status = domain.StatusCorrupted
			doc.Reason = "invalid XLS workbook"
			doc.Text = ""
		}
	}()

	wb, err := xls.Open(fd.Path, "utf-8")
	if err != nil {
		doc.Status = domain.StatusCorrupted
		doc.Reason = "invalid XLS workbook"
		return doc, nil
	}

	var sheets []string
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}

		var rendered []string
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				continue
			}

			var cells []string
			for c := row.FirstCol(); c < row.LastCol(); c++ {
				cells = append(cells, row.Col(c))
			}
			if line := renderRow(cells); line != "" {
				rendered = append(rendered, line)
			}
		}
		if len(rendered) > 0 {
			sheets = append(sheets, "Sheet: "+sheet.Name+"\n"+strings.Join(rendered, "\n"))
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
