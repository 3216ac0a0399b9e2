package http1

import "errors"

var (
	// ErrMalformedRequest covers any framing or syntax failure: a request
	// line that is not exactly three tokens, a header line without a colon,
	// an undecodable path, or a body shorter than its declared length's
	// headers promised.
	ErrMalformedRequest = errors.New("http1: malformed request")

	// ErrDuplicateHeader is returned when a header key appears twice.
	// Duplicates are rejected outright rather than resolved first- or
	// last-wins, so a request can never smuggle two Host or Content-Length
	// values past the parser.
	ErrDuplicateHeader = errors.New("http1: duplicate header")

	// ErrRequestTooLarge is returned when the declared body length or the
	// accumulated header block exceeds the configured caps.
	ErrRequestTooLarge = errors.New("http1: request too large")

	// ErrTruncatedBody is returned when the peer closes before sending the
	// full Content-Length bytes.
	ErrTruncatedBody = errors.New("http1: truncated body")
)
