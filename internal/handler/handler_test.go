package handler

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowkeyarhan/Socket-P-assignment/internal/filecache"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/http1"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/respond"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/storage"
)

func newTestHandler(t *testing.T) (*Handler, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<html>home</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("plain text"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "archive.zip"), []byte{0x50, 0x4b}, 0o644))

	uploads, err := storage.NewStore(filepath.Join(root, "uploads"))
	require.NoError(t, err)

	h := New(Config{
		Root:       root,
		DefaultDoc: "index.html",
		Uploads:    uploads,
		Cache:      filecache.New(filecache.Options{TTL: time.Minute}),
		Writer:     respond.NewWriter("test-server", 30*time.Second, 100),
		Logger:     slog.New(slog.DiscardHandler),
	})
	return h, root
}

func getReq(path string) *http1.Request {
	return &http1.Request{Method: "GET", Path: path, Proto: "HTTP/1.1", Header: map[string]string{}}
}

func TestHandle_RootServesDefaultDocument(t *testing.T) {
	h, _ := newTestHandler(t)
	resp := h.Handle(getReq("/"))
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, "text/html; charset=utf-8", resp.ContentType)
	assert.Equal(t, []byte("<html>home</html>"), resp.Body)
	assert.False(t, resp.Close)
}

func TestHandle_TextFileIsDownload(t *testing.T) {
	h, _ := newTestHandler(t)
	resp := h.Handle(getReq("/notes.txt"))
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, "application/octet-stream", resp.ContentType)
	assert.Equal(t, []byte("plain text"), resp.Body)

	var disposition string
	for _, f := range resp.Extra {
		if f.Name == "Content-Disposition" {
			disposition = f.Value
		}
	}
	assert.Equal(t, `attachment; filename="notes.txt"`, disposition)
}

func TestHandle_Traversal403(t *testing.T) {
	h, _ := newTestHandler(t)
	resp := h.Handle(getReq("/../secret"))
	assert.Equal(t, 403, resp.Status)
	assert.True(t, resp.Close)
}

func TestHandle_Missing404(t *testing.T) {
	h, _ := newTestHandler(t)
	resp := h.Handle(getReq("/nope.html"))
	assert.Equal(t, 404, resp.Status)
	assert.False(t, resp.Close)
}

func TestHandle_Directory404(t *testing.T) {
	h, root := newTestHandler(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub.html"), 0o755))
	resp := h.Handle(getReq("/sub.html"))
	assert.Equal(t, 404, resp.Status)
}

func TestHandle_UnsupportedExtension415(t *testing.T) {
	h, _ := newTestHandler(t)
	resp := h.Handle(getReq("/archive.zip"))
	assert.Equal(t, 415, resp.Status)
	assert.False(t, resp.Close)
}

func TestHandle_UnsupportedMethod405(t *testing.T) {
	h, _ := newTestHandler(t)
	resp := h.Handle(&http1.Request{Method: "DELETE", Path: "/", Proto: "HTTP/1.1", Header: map[string]string{}})
	assert.Equal(t, 405, resp.Status)
	assert.True(t, resp.Close)
}

func TestHandle_RepeatGetServedFromCache(t *testing.T) {
	h, root := newTestHandler(t)
	first := h.Handle(getReq("/notes.txt"))
	require.Equal(t, 200, first.Status)

	// Change the file on disk; within the TTL the cached body is served.
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("changed"), 0o644))
	second := h.Handle(getReq("/notes.txt"))
	assert.Equal(t, first.Body, second.Body)
}

func postReq(body, contentType string) *http1.Request {
	return &http1.Request{
		Method: "POST",
		Path:   "/upload",
		Proto:  "HTTP/1.1",
		Header: map[string]string{"content-type": contentType},
		Body:   []byte(body),
	}
}

func TestHandle_PostJSON(t *testing.T) {
	h, root := newTestHandler(t)
	resp := h.Handle(postReq(`{"a":1}`, "application/json"))
	require.Equal(t, 201, resp.Status)
	assert.Equal(t, "application/json", resp.ContentType)
	assert.False(t, resp.Close)

	var result struct {
		Status   string `json:"status"`
		Message  string `json:"message"`
		Filepath string `json:"filepath"`
	}
	require.NoError(t, json.Unmarshal(resp.Body, &result))
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "File created successfully", result.Message)
	assert.True(t, strings.HasPrefix(result.Filepath, "/uploads/upload_"))

	stored := filepath.Join(root, "uploads", strings.TrimPrefix(result.Filepath, "/uploads/"))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(data))
}

func TestHandle_PostWrongContentType415(t *testing.T) {
	h, _ := newTestHandler(t)
	resp := h.Handle(postReq(`{"a":1}`, "text/plain"))
	assert.Equal(t, 415, resp.Status)
	assert.False(t, resp.Close)
}

func TestHandle_PostInvalidJSON400(t *testing.T) {
	h, _ := newTestHandler(t)
	resp := h.Handle(postReq("not json", "application/json"))
	assert.Equal(t, 400, resp.Status)
	assert.True(t, resp.Close)
}
