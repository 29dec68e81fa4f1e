package image

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
)

// fakeEngine is a test double for the OCR port.
type fakeEngine struct {
	text         string
	recogniseErr error
	availableErr error
}

func (f *fakeEngine) Recognise(context.Context, string) (string, error) {
	return f.text, f.recogniseErr
}

func (f *fakeEngine) Available() error {
	return f.availableErr
}

func TestSupportedExtensions(t *testing.T) {
	assert.ElementsMatch(t, []string{".jpg", ".jpeg", ".png"}, New(nil).SupportedExtensions())
}

func TestExtract_Success(t *testing.T) {
	e := New(&fakeEngine{text: "scanned invoice total 42"})

	doc, err := e.Extract(context.Background(), domain.FileDescriptor{
		Path: "/photos/scan.png", RelPath: "scan.png", Ext: ".png",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusOK, doc.Status)
	assert.Equal(t, "scanned invoice total 42", doc.Text)
}

func TestExtract_NilEngine(t *testing.T) {
	_, err := New(nil).Extract(context.Background(), domain.FileDescriptor{
		Path: "/photos/scan.png", RelPath: "scan.png", Ext: ".png",
	})

	assert.ErrorIs(t, err, domain.ErrOCRUnavailable)
}

func TestExtract_EngineUnavailable(t *testing.T) {
	e := New(&fakeEngine{availableErr: domain.ErrOCRUnavailable})

	_, err := e.Extract(context.Background(), domain.FileDescriptor{
		Path: "/photos/scan.png", RelPath: "scan.png", Ext: ".png",
	})

	assert.ErrorIs(t, err, domain.ErrOCRUnavailable)
}

func TestExtract_OCRFailure(t *testing.T) {
	e := New(&fakeEngine{recogniseErr: errors.New("tesseract exploded")})

	doc, err := e.Extract(context.Background(), domain.FileDescriptor{
		Path: "/photos/scan.png", RelPath: "scan.png", Ext: ".png",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCorrupted, doc.Status)
	assert.Contains(t, doc.Reason, "OCR failed")
}

func TestExtract_NoTextInImage(t *testing.T) {
	e := New(&fakeEngine{text: "  \n"})

	doc, err := e.Extract(context.Background(), domain.FileDescriptor{
		Path: "/photos/blank.jpg", RelPath: "blank.jpg", Ext: ".jpg",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusEmpty, doc.Status)
}
