package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"LF-ADMIN/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConverter struct {
	calls int
	err   error
}

func (f *fakeConverter) ConvertToPDF(ctx context.Context, r io.Reader, filename string) (io.ReadCloser, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	data, _ := io.ReadAll(r)
	return io.NopCloser(bytes.NewReader(append([]byte("%PDF "), data...))), nil
}

func newLocalDocs(t *testing.T, conv PDFConverter) (*DocumentService, *storage.LocalStorageClient) {
	client, err := storage.NewLocalStorageClient(t.TempDir(), "http://localhost:8081/files", "secret")
	require.NoError(t, err)
	return NewDocumentService(client, "local", conv, nil), client
}

func TestDocumentUploadStoresFile(t *testing.T) {
	conv := &fakeConverter{}
	svc, client := newLocalDocs(t, conv)

	doc, err := svc.Upload(context.Background(), strings.NewReader("scan"), "form16.pdf", "application/pdf", "form16", "rec-1")
	require.NoError(t, err)
	assert.Equal(t, 0, conv.calls, "pdfs are stored as uploaded")
	assert.False(t, doc.Converted)
	assert.Equal(t, doc.FilePath, doc.Attachment)
	assert.True(t, strings.HasPrefix(doc.FilePath, "documents/form16/rec-1/"))
	assert.Contains(t, doc.URL, "signature=")

	rc, err := client.ReadFile(context.Background(), doc.FilePath)
	require.NoError(t, err)
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "scan", string(body))
}

func TestDocumentUploadConvertsOfficeFiles(t *testing.T) {
	conv := &fakeConverter{}
	svc, client := newLocalDocs(t, conv)

	doc, err := svc.Upload(context.Background(), strings.NewReader("docx"), "TDS Certificate.docx", "", "form16", "rec-2")
	require.NoError(t, err)
	assert.Equal(t, 1, conv.calls)
	assert.True(t, doc.Converted)
	assert.True(t, strings.HasSuffix(doc.FilePath, "_TDS_Certificate.pdf"))

	rc, err := client.ReadFile(context.Background(), doc.FilePath)
	require.NoError(t, err)
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "%PDF docx", string(body))
}

func TestDocumentUploadConversionFailure(t *testing.T) {
	svc, _ := newLocalDocs(t, &fakeConverter{err: errors.New("gotenberg down")})

	_, err := svc.Upload(context.Background(), strings.NewReader("docx"), "a.docx", "", "form16", "rec-3")
	assert.ErrorContains(t, err, "gotenberg down")
}

func TestDocumentSignedURL(t *testing.T) {
	svc, _ := newLocalDocs(t, nil)

	_, err := svc.SignedURL(" ")
	assert.ErrorIs(t, err, ErrNotFound)

	url, err := svc.SignedURL("documents/x.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8081/files/documents/x.pdf?"))
}
