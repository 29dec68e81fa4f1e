package services

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
	"github.com/custodia-labs/docscout-cli/internal/logger"
)

// Scanner walks a directory tree and yields candidate files with
// supported extensions. Traversal is lexicographic, so results are
// reproducible across runs; symbolic links are not followed, which
// also rules out link cycles.
type Scanner struct {
	exts map[string]struct{}
}

// NewScanner creates a scanner accepting the given extensions
// (lower-cased, with the leading dot).
func NewScanner(extensions []string) *Scanner {
	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = struct{}{}
	}
	return &Scanner{exts: exts}
}

// Scan collects up to maxDocs supported files under root, in
// lexicographic path order. Per-entry failures (unreadable
// directories, permission errors) are logged and skipped; only a
// missing or non-directory root is fatal. maxDocs <= 0 means no limit.
func (s *Scanner) Scan(root string, maxDocs int) ([]domain.FileDescriptor, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrFolderNotFound, root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a folder: %s", domain.ErrFolderNotFound, root)
	}

	var files []domain.FileDescriptor
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			logger.Warn("Skipping %s: %v", path, walkErr)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := s.exts[ext]; !ok {
			return nil
		}

		fileInfo, err := d.Info()
		if err != nil {
			logger.Warn("Skipping %s: %v", path, err)
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			rel = path
		}

		files = append(files, domain.FileDescriptor{
			Path:    path,
			RelPath: filepath.ToSlash(rel),
			Ext:     ext,
			Size:    fileInfo.Size(),
		})

		if maxDocs > 0 && len(files) >= maxDocs {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.SkipAll) {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	logger.Debug("Scan found %d supported files under %s", len(files), absRoot)
	return files, nil
}
