package extractors

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
	"github.com/custodia-labs/docscout-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps file extensions to extractors.
type Registry struct {
	mu    sync.RWMutex
	byExt map[string]driven.Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		byExt: make(map[string]driven.Extractor),
	}
}

// Register adds an extractor for every extension it supports.
// A later registration for the same extension wins.
func (r *Registry) Register(extractor driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range extractor.SupportedExtensions() {
		r.byExt[strings.ToLower(ext)] = extractor
	}
}

// Extract dispatches the file to the extractor registered for its
// extension. Unknown extensions yield StatusUnsupportedFormat without
// opening the file.
func (r *Registry) Extract(ctx context.Context, fd domain.FileDescriptor) (domain.ExtractedDocument, error) {
	r.mu.RLock()
	extractor, ok := r.byExt[strings.ToLower(fd.Ext)]
	r.mu.RUnlock()

	if !ok {
		return domain.ExtractedDocument{
			ID:      uuid.New().String(),
			Path:    fd.Path,
			RelPath: fd.RelPath,
			Status:  domain.StatusUnsupportedFormat,
			Reason:  "unsupported format: " + fd.Ext,
		}, nil
	}

	return extractor.Extract(ctx, fd)
}

// SupportedExtensions returns all registered extensions, sorted.
func (r *Registry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
