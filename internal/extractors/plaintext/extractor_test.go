package plaintext

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
)

func writeFile(t *testing.T, name string, content []byte) domain.FileDescriptor {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0600))
	return domain.FileDescriptor{
		Path:    path,
		RelPath: name,
		Ext:     filepath.Ext(name),
	}
}

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
}

func TestSupportedExtensions(t *testing.T) {
	assert.ElementsMatch(t, []string{".txt", ".md"}, New().SupportedExtensions())
}

func TestExtract_UTF8(t *testing.T) {
	fd := writeFile(t, "a.txt", []byte("budget planning for Q3"))

	doc, err := New().Extract(context.Background(), fd)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusOK, doc.Status)
	assert.Equal(t, "budget planning for Q3", doc.Text)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "a.txt", doc.RelPath)
}

func TestExtract_GBKFallback(t *testing.T) {
	// GBK bytes for 预算 that are not a valid UTF-8 sequence.
	gbk, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte("预算报告"))
	require.NoError(t, err)
	fd := writeFile(t, "b.txt", gbk)

	doc, err := New().Extract(context.Background(), fd)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusOK, doc.Status)
	assert.Equal(t, "预算报告", doc.Text)
}

func TestExtract_ArbitraryBytesNeverFail(t *testing.T) {
	// Bytes invalid in UTF-8 and GBK still decode via latin-1.
	fd := writeFile(t, "c.txt", []byte{0xff, 0xfe, 0x80, 0x41})

	doc, err := New().Extract(context.Background(), fd)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusOK, doc.Status)
	assert.NotEqual(t, domain.StatusEncodingFailed, doc.Status)
}

func TestExtract_EmptyFile(t *testing.T) {
	fd := writeFile(t, "empty.txt", []byte("  \n\t"))

	doc, err := New().Extract(context.Background(), fd)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusEmpty, doc.Status)
	assert.Empty(t, doc.Text)
}

func TestExtract_MissingFile(t *testing.T) {
	fd := domain.FileDescriptor{
		Path:    filepath.Join(t.TempDir(), "missing.txt"),
		RelPath: "missing.txt",
		Ext:     ".txt",
	}

	doc, err := New().Extract(context.Background(), fd)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCorrupted, doc.Status)
	assert.NotEmpty(t, doc.Reason)
}

func TestExtract_TruncatesLongContent(t *testing.T) {
	fd := writeFile(t, "long.txt", []byte(strings.Repeat("a", 150_000)))

	doc, err := New().Extract(context.Background(), fd)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusOK, doc.Status)
	assert.Len(t, doc.Text, domain.MaxExtractedChars)
}
