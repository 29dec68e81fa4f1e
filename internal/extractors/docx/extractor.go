// Package docx extracts text from Word OOXML documents by reading
// word/document.xml out of the ZIP container.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
	"github.com/custodia-labs/docscout-cli/internal/core/ports/driven"
)

// oleMagic is the Compound File Binary signature. Encrypted OOXML
// documents are wrapped in a CFB container instead of a ZIP.
var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// IsOLEContainer reports whether the bytes start a CFB container.
func IsOLEContainer(b []byte) bool {
	return bytes.HasPrefix(b, oleMagic)
}

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles DOCX documents.
type Extractor struct{}

// New creates a new DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".docx"}
}

// Extract reads the document text from the OOXML container.
func (e *Extractor) Extract(_ context.Context, fd domain.FileDescriptor) (domain.ExtractedDocument, error) {
	doc := domain.ExtractedDocument{
		ID:      uuid.New().String(),
		Path:    fd.Path,
		RelPath: fd.RelPath,
	}

	raw, err := os.ReadFile(fd.Path)
	if err != nil {
		doc.Status = domain.StatusCorrupted
		doc.Reason = err.Error()
		return doc, nil
	}

	if IsOLEContainer(raw) {
		doc.Status = domain.StatusEncrypted
		doc.Reason = domain.ErrEncrypted.Error()
		return doc, nil
	}

	reader, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		doc.Status = domain.StatusCorrupted
		doc.Reason = "invalid DOCX container"
		return doc, nil
	}

	text, ok := extractDocumentText(reader)
	if !ok {
		doc.Status = domain.StatusCorrupted
		doc.Reason = "missing word/document.xml"
		return doc, nil
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

// extractDocumentText extracts text from word/document.xml.
// The second return is false when the entry is absent or unreadable.
func extractDocumentText(reader *zip.Reader) (string, bool) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", false
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", false
		}

		return parseDocumentXML(content), true
	}
	return "", false
}

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// parseDocumentXML extracts text content from the document XML.
func parseDocumentXML(content []byte) string {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return ""
	}

	var result strings.Builder
	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			result.WriteString("\n")
		}
		for _, r := range para.Runs {
			for _, t := range r.Text {
				result.WriteString(t.Content)
			}
		}
	}

	return strings.TrimSpace(result.String())
}
