// Package respond builds and transmits HTTP responses: header assembly,
// keep-alive advertisement, HTML error pages and the 503 admission reject.
package respond

import (
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/lowkeyarhan/Socket-P-assignment/internal/http1"
)

// httpDateLayout is the RFC 7231 IMF-fixdate format.
const httpDateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// Response is a fully materialized reply waiting to be written.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
	// Close forces the connection shut after this response regardless of
	// what the request asked for. Set on every fail-closed status.
	Close bool
	// Extra carries conditional headers such as Content-Disposition.
	Extra []http1.HeaderField
}

// Writer stamps responses with the server identity and keep-alive terms.
type Writer struct {
	ServerName       string
	KeepAliveTimeout time.Duration
	KeepAliveMax     int

	now      func() time.Time
	sanitize *bluemonday.Policy
	errTmpl  *template.Template
}

// NewWriter returns a Writer advertising the given server name and
// keep-alive limits.
func NewWriter(serverName string, keepAliveTimeout time.Duration, keepAliveMax int) *Writer {
	return &Writer{
		ServerName:       serverName,
		KeepAliveTimeout: keepAliveTimeout,
		KeepAliveMax:     keepAliveMax,
		now:              time.Now,
		sanitize:         bluemonday.StrictPolicy(),
		errTmpl:          errorPageTemplate,
	}
}

// Write transmits resp. keepAlive is the connection-loop decision; the
// resulting Connection and Keep-Alive headers always agree with what the
// loop will actually do next.
func (w *Writer) Write(conn io.Writer, resp *Response, keepAlive bool) error {
	fields := make([]http1.HeaderField, 0, 8+len(resp.Extra))
	fields = append(fields,
		http1.HeaderField{Name: "Content-Type", Value: resp.ContentType},
		http1.HeaderField{Name: "Content-Length", Value: strconv.Itoa(len(resp.Body))},
	)
	fields = append(fields, resp.Extra...)
	fields = append(fields,
		http1.HeaderField{Name: "Date", Value: w.now().UTC().Format(httpDateLayout)},
		http1.HeaderField{Name: "Server", Value: w.ServerName},
	)
	if keepAlive {
		fields = append(fields,
			http1.HeaderField{Name: "Connection", Value: "keep-alive"},
			http1.HeaderField{Name: "Keep-Alive", Value: fmt.Sprintf("timeout=%d, max=%d", int(w.KeepAliveTimeout.Seconds()), w.KeepAliveMax)},
		)
	} else {
		fields = append(fields, http1.HeaderField{Name: "Connection", Value: "close"})
	}
	if resp.Status == 503 {
		fields = append(fields, http1.HeaderField{Name: "Retry-After", Value: "60"})
	}
	return http1.WriteResponse(conn, resp.Status, fields, resp.Body)
}

// closingStatus lists statuses after which the connection is always shut:
// protocol and security failures, unsupported methods, handler crashes and
// admission rejects. 404 and 415 stay keep-alive eligible.
func closingStatus(status int) bool {
	switch status {
	case 400, 403, 405, 500, 503:
		return true
	}
	return false
}

// ErrorPage renders the standard HTML error document. message may echo
// user-controlled text (the requested path); it is stripped of any markup
// before templating.
func (w *Writer) ErrorPage(status int, message string) *Response {
	reason := http1.ReasonPhrase(status)
	if message == "" {
		message = reason
	}
	var sb strings.Builder
	_ = w.errTmpl.Execute(&sb, errorPageData{
		Status:  status,
		Reason:  reason,
		Message: w.sanitize.Sanitize(message),
		Server:  w.ServerName,
	})
	return &Response{
		Status:      status,
		ContentType: "text/html; charset=utf-8",
		Body:        []byte(sb.String()),
		Close:       closingStatus(status),
	}
}

// WriteBusy sends the admission-reject 503 with its Retry-After hint and no
// keep-alive. Used by the listener before a connection ever reaches a worker.
func (w *Writer) WriteBusy(conn io.Writer) error {
	return w.Write(conn, w.ErrorPage(503, "Server is at capacity, please retry"), false)
}

type errorPageData struct {
	Status  int
	Reason  string
	Message string
	Server  string
}

var errorPageTemplate = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>{{.Status}} {{.Reason}}</title>
</head>
<body>
    <h1>{{.Status}} {{.Reason}}</h1>
    <p>{{.Message}}</p>
    <hr>
    <p><em>{{.Server}}</em></p>
</body>
</html>`))
