package http1

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteResponse(t *testing.T) {
	var buf bytes.Buffer
	err := WriteResponse(&buf, 200, []HeaderField{
		{Name: "Content-Type", Value: "text/html; charset=utf-8"},
		{Name: "Content-Length", Value: "5"},
	}, []byte("hello"))
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "HTTP/1.1 200 OK\r\n"))
	assert.Contains(t, out, "Content-Type: text/html; charset=utf-8\r\n")
	assert.True(t, strings.HasSuffix(out, "\r\n\r\nhello"))
}

func TestWriteResponse_HeaderOrderPreserved(t *testing.T) {
	var buf bytes.Buffer
	err := WriteResponse(&buf, 201, []HeaderField{
		{Name: "A", Value: "1"},
		{Name: "B", Value: "2"},
		{Name: "C", Value: "3"},
	}, nil)
	require.NoError(t, err)
	out := buf.String()
	assert.Less(t, strings.Index(out, "A: 1"), strings.Index(out, "B: 2"))
	assert.Less(t, strings.Index(out, "B: 2"), strings.Index(out, "C: 3"))
}

func TestWriteResponse_SanitizesHeaderValues(t *testing.T) {
	var buf bytes.Buffer
	err := WriteResponse(&buf, 200, []HeaderField{
		{Name: "X-Injected", Value: "a\r\nSet-Cookie: evil"},
	}, nil)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "\r\nSet-Cookie")
	assert.Contains(t, buf.String(), "X-Injected: aSet-Cookie: evil\r\n")
}

func TestReasonPhrase(t *testing.T) {
	assert.Equal(t, "OK", ReasonPhrase(200))
	assert.Equal(t, "Created", ReasonPhrase(201))
	assert.Equal(t, "Bad Request", ReasonPhrase(400))
	assert.Equal(t, "Forbidden", ReasonPhrase(403))
	assert.Equal(t, "Not Found", ReasonPhrase(404))
	assert.Equal(t, "Method Not Allowed", ReasonPhrase(405))
	assert.Equal(t, "Unsupported Media Type", ReasonPhrase(415))
	assert.Equal(t, "Internal Server Error", ReasonPhrase(500))
	assert.Equal(t, "Service Unavailable", ReasonPhrase(503))
}
