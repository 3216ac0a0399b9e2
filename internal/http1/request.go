package http1

import "strings"

// Request is a single decoded HTTP/1.x request. Header keys are lowercased
// and unique; Path is percent-decoded but not yet sanitized against the
// serving root.
type Request struct {
	Method string
	Path   string
	Proto  string
	Header map[string]string
	Body   []byte
}

// HeaderValue returns the value for key, case-insensitively.
func (r *Request) HeaderValue(key string) string {
	return r.Header[strings.ToLower(key)]
}

// WantsKeepAlive reports the connection preference expressed by the request
// itself: an explicit Connection header wins, otherwise HTTP/1.1 defaults to
// persistent and everything else to close.
func (r *Request) WantsKeepAlive() bool {
	switch strings.ToLower(r.HeaderValue("Connection")) {
	case "close":
		return false
	case "keep-alive":
		return true
	default:
		return r.Proto == "HTTP/1.1"
	}
}
