package storage

import (
	"context"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	client, err := NewLocalStorageClient(t.TempDir(), "http://localhost:8081/files", "secret")
	require.NoError(t, err)
	ctx := context.Background()

	res, err := client.UploadFile(ctx, strings.NewReader("form16 pdf"), "documents/form16/abc/1_form16.pdf", "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(10), res.Size)
	assert.Equal(t, "http://localhost:8081/files/documents/form16/abc/1_form16.pdf", res.PublicURL)

	rc, err := client.ReadFile(ctx, res.ObjectName)
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "form16 pdf", string(body))

	require.NoError(t, client.DeleteFile(ctx, res.ObjectName))
	require.NoError(t, client.DeleteFile(ctx, res.ObjectName))

	full, _ := client.ResolvePath("documents")
	_, err = os.Stat(full)
	assert.True(t, os.IsNotExist(err), "empty directories are cleaned up")
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	client, err := NewLocalStorageClient(t.TempDir(), "", "")
	require.NoError(t, err)

	_, err = client.ResolvePath("../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidPath)
	_, err = client.UploadFile(context.Background(), strings.NewReader("x"), "a/../../b", "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.False(t, client.Served())
}

func TestLocalStorageSignedURL(t *testing.T) {
	client, err := NewLocalStorageClient(t.TempDir(), "http://files.local", "secret")
	require.NoError(t, err)

	signed, err := client.GetSignedURL("documents/x.pdf", time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	expires, err := strconv.ParseInt(u.Query().Get("expires"), 10, 64)
	require.NoError(t, err)

	assert.True(t, client.VerifySignedURL("documents/x.pdf", expires, u.Query().Get("signature")))
	assert.False(t, client.VerifySignedURL("documents/y.pdf", expires, u.Query().Get("signature")))
	assert.False(t, client.VerifySignedURL("documents/x.pdf", time.Now().Add(-time.Minute).Unix(), u.Query().Get("signature")))
}

func TestGenerateDocumentObjectName(t *testing.T) {
	name := GenerateDocumentObjectName("form16", "", "../My Form.pdf")
	assert.True(t, strings.HasPrefix(name, "documents/form16/unassigned/"))
	assert.True(t, strings.HasSuffix(name, "_My_Form.pdf"))
}
