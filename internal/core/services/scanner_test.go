package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
)

var testExts = []string{".pdf", ".docx", ".doc", ".xlsx", ".xls", ".txt", ".md", ".jpg", ".jpeg", ".png"}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	}
	return root
}

func relPaths(fds []domain.FileDescriptor) []string {
	out := make([]string, len(fds))
	for i, fd := range fds {
		out[i] = fd.RelPath
	}
	return out
}

func TestScan_FiltersAndSorts(t *testing.T) {
	root := writeTree(t, map[string]string{
		"b.txt":        "b",
		"a.md":         "a",
		"sub/c.pdf":    "c",
		"ignored.zip":  "zip",
		"also/skip.go": "go",
	})

	files, err := NewScanner(testExts).Scan(root, 0)

	require.NoError(t, err)
	assert.Equal(t, []string{"a.md", "b.txt", "sub/c.pdf"}, relPaths(files))
}

func TestScan_CaseInsensitiveExtensions(t *testing.T) {
	root := writeTree(t, map[string]string{
		"UPPER.TXT": "x",
		"Mixed.Pdf": "y",
	})

	files, err := NewScanner(testExts).Scan(root, 0)

	require.NoError(t, err)
	assert.Len(t, files, 2)
	for _, fd := range files {
		assert.Contains(t, []string{".txt", ".pdf"}, fd.Ext)
	}
}

func TestScan_MaxDocsLimit(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.txt": "1", "b.txt": "2", "c.txt": "3", "d.txt": "4",
	})

	files, err := NewScanner(testExts).Scan(root, 2)

	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, relPaths(files))
}

func TestScan_MissingRoot(t *testing.T) {
	_, err := NewScanner(testExts).Scan(filepath.Join(t.TempDir(), "nope"), 0)

	assert.ErrorIs(t, err, domain.ErrFolderNotFound)
}

func TestScan_RootIsFile(t *testing.T) {
	root := writeTree(t, map[string]string{"a.txt": "x"})

	_, err := NewScanner(testExts).Scan(filepath.Join(root, "a.txt"), 0)

	assert.ErrorIs(t, err, domain.ErrFolderNotFound)
}

func TestScan_RecordsSize(t *testing.T) {
	root := writeTree(t, map[string]string{"a.txt": "hello"})

	files, err := NewScanner(testExts).Scan(root, 0)

	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, int64(5), files[0].Size)
	assert.True(t, filepath.IsAbs(files[0].Path))
}
