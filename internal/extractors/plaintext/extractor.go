// Package plaintext extracts text from plain text and Markdown files,
// decoding with an ordered encoding fallback chain.
package plaintext

import (
	"bytes"
	"context"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
	"github.com/custodia-labs/docscout-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text and Markdown documents.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".txt", ".md"}
}

// decoding is one attempt in the fallback chain. ok is false when the
// bytes are not valid in this encoding, moving on to the next attempt.
type decoding struct {
	name   string
	decode func(b []byte) (string, bool)
}

// decodings is the ordered fallback chain: UTF-8 first, the two
// simplified-Chinese legacy encodings next, and ISO-8859-1 last.
// The terminal decoder accepts every byte, so the chain as a whole
// never hard-fails.
var decodings = []decoding{
	{"utf-8", decodeUTF8},
	{"gbk", decodeWith(simplifiedchinese.GBK)},
	{"gb18030", decodeWith(simplifiedchinese.GB18030)},
	{"latin-1", decodeLatin1},
}

// Extract decodes the file with the first encoding that accepts it.
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

	for _, d := range decodings {
		text, ok := d.decode(raw)
		if !ok {
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

	// Unreachable while latin-1 terminates the chain.
	doc.Status = domain.StatusEncodingFailed
	doc.Reason = domain.ErrEncodingFailed.Error()
	return doc, nil
}

func decodeUTF8(b []byte) (string, bool) {
	if !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}

// decodeWith builds a strict decoder for an x/text encoding. The
// x/text decoders substitute U+FFFD for invalid input instead of
// failing, so a replacement rune in the output is treated as a reject.
func decodeWith(enc encoding.Encoding) func(b []byte) (string, bool) {
	return func(b []byte) (string, bool) {
		out, err := enc.NewDecoder().Bytes(b)
		if err != nil {
			return "", false
		}
		if bytes.ContainsRune(out, utf8.RuneError) {
			return "", false
		}
		return string(out), true
	}
}

// decodeLatin1 maps every byte to a rune, so it never fails.
func decodeLatin1(b []byte) (string, bool) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	return string(out), true
}
