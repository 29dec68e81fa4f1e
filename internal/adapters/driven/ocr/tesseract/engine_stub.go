//go:build !cgo

// Package tesseract provides an OCR engine adapter backed by the
// Tesseract library via gosseract. Builds without CGO get a stub that
// reports the engine unavailable.
package tesseract

import (
	"context"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
	"github.com/custodia-labs/docscout-cli/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.OCREngine = (*Engine)(nil)

// Engine recognises text in images using Tesseract.
// This is a stub for builds without CGO.
type Engine struct{}

// New creates a Tesseract engine with the given language set.
func New(_ ...string) *Engine {
	return &Engine{}
}

// Available reports the engine unavailable in non-CGO builds.
func (e *Engine) Available() error {
	return domain.ErrOCRUnavailable
}

// Recognise always fails in non-CGO builds.
func (e *Engine) Recognise(_ context.Context, _ string) (string, error) {
	return "", domain.ErrOCRUnavailable
}
