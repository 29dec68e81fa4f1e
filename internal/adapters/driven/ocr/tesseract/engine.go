//go:build cgo

// Package tesseract provides an OCR engine adapter backed by the
// Tesseract library via gosseract. Builds without CGO get a stub that
// reports the engine unavailable.
package tesseract

import (
	"context"
	"fmt"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
	"github.com/custodia-labs/docscout-cli/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.OCREngine = (*Engine)(nil)

// defaultLanguages covers Simplified Chinese and Latin scripts.
var defaultLanguages = []string{"chi_sim", "eng"}

// Engine recognises text in images using Tesseract.
type Engine struct {
	mu        sync.Mutex
	languages []string

	checkOnce sync.Once
	checkErr  error
}

// New creates a Tesseract engine with the given language set.
// An empty set defaults to chi_sim+eng.
func New(languages ...string) *Engine {
	if len(languages) == 0 {
		languages = defaultLanguages
	}
	return &Engine{languages: languages}
}

// Available verifies the Tesseract installation once. Missing language
// data degrades to English rather than failing outright.
func (e *Engine) Available() error {
	e.checkOnce.Do(func() {
		client := gosseract.NewClient()
		defer client.Close()

		langs, err := client.GetAvailableLanguages()
		if err != nil {
			e.checkErr = fmt.Errorf("%w: %v", domain.ErrOCRUnavailable, err)
			return
		}
		if len(langs) == 0 {
			e.checkErr = fmt.Errorf("%w: no language data installed", domain.ErrOCRUnavailable)
		}
	})
	return e.checkErr
}

// Recognise runs OCR over the image at path and returns the text.
func (e *Engine) Recognise(ctx context.Context, path string) (string, error) {
	if err := e.Available(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// gosseract clients are not safe for concurrent use.
	e.mu.Lock()
	defer e.mu.Unlock()

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	if err := client.SetLanguage(e.languages...); err == nil {
		if text, err := client.Text(); err == nil {
			return text, nil
		}
	}

	// Chinese language data may be absent; retry with English only.
	if err := client.SetLanguage("eng"); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognise: %w", err)
	}
	return text, nil
}
