package pdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
)

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{".pdf"}, New().SupportedExtensions())
}

func TestExtract_Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 but nothing else"), 0600))

	doc, err := New().Extract(context.Background(), domain.FileDescriptor{
		Path: path, RelPath: "broken.pdf", Ext: ".pdf",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCorrupted, doc.Status)
	assert.NotEmpty(t, doc.Reason)
}

func TestExtract_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0600))

	doc, err := New().Extract(context.Background(), domain.FileDescriptor{
		Path: path, RelPath: "fake.pdf", Ext: ".pdf",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCorrupted, doc.Status)
}

func TestExtract_MissingFile(t *testing.T) {
	doc, err := New().Extract(context.Background(), domain.FileDescriptor{
		Path: filepath.Join(t.TempDir(), "missing.pdf"), RelPath: "missing.pdf", Ext: ".pdf",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCorrupted, doc.Status)
}
