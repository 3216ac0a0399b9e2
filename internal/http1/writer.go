package http1

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// HeaderField is one response header. Responses carry an ordered slice
// rather than a map so the wire output is deterministic.
type HeaderField struct {
	Name  string
	Value string
}

// WriteResponse transmits a complete response: status line, headers, blank
// line, body. The underlying net.Conn write contract means every byte is
// delivered or an error comes back; there is no silent truncation.
func WriteResponse(w io.Writer, status int, fields []HeaderField, body []byte) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "HTTP/1.1 %d %s\r\n", status, ReasonPhrase(status)); err != nil {
		return err
	}
	for _, f := range fields {
		if _, err := fmt.Fprintf(bw, "%s: %s\r\n", f.Name, sanitizeValue(f.Value)); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("\r\n"); err != nil {
		return err
	}
	if len(body) > 0 {
		if _, err := bw.Write(body); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReasonPhrase returns the standard reason phrase for the status codes this
// server produces.
func ReasonPhrase(status int) string {
	switch status {
	case 200:
		return "OK"
	case 201:
		return "Created"
	case 400:
		return "Bad Request"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 405:
		return "Method Not Allowed"
	case 415:
		return "Unsupported Media Type"
	case 500:
		return "Internal Server Error"
	case 503:
		return "Service Unavailable"
	default:
		return "Unknown"
	}
}

// sanitizeValue strips CR/LF and control bytes so a header value can never
// split the response.
func sanitizeValue(v string) string {
	if !strings.ContainsFunc(v, func(r rune) bool { return r < 0x20 && r != '\t' || r == 0x7f }) {
		return v
	}
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '\r' || c == '\n' || c == 0x7f {
			continue
		}
		if c < 0x20 && c != '\t' {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
