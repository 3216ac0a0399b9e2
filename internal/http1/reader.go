package http1

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultMaxHeaderBytes caps the request line plus header block.
	DefaultMaxHeaderBytes = 8 << 10
	// DefaultMaxBodyBytes caps the declared Content-Length.
	DefaultMaxBodyBytes = 1 << 20
)

// Reader frames and decodes requests off a buffered connection.
type Reader struct {
	BR             *bufio.Reader
	MaxHeaderBytes int
	MaxBodyBytes   int64
}

// ReadRequest reads one full request: the header block up to the blank line,
// then exactly Content-Length body bytes. io.EOF is returned only when the
// peer closed before sending a single byte; a close mid-request surfaces as
// ErrMalformedRequest or ErrTruncatedBody.
func (r *Reader) ReadRequest() (*Request, error) {
	maxHeader := r.MaxHeaderBytes
	if maxHeader <= 0 {
		maxHeader = DefaultMaxHeaderBytes
	}
	maxBody := r.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	headerBytes := 0
	line, err := r.readLine(&headerBytes, maxHeader)
	if err != nil {
		if err == io.EOF && headerBytes == 0 {
			return nil, io.EOF
		}
		return nil, r.framingError(err)
	}

	method, rawPath, proto, err := parseRequestLine(line)
	if err != nil {
		return nil, err
	}

	header := make(map[string]string)
	for {
		line, err = r.readLine(&headerBytes, maxHeader)
		if err != nil {
			return nil, r.framingError(err)
		}
		if line == "" {
			break
		}
		i := strings.IndexByte(line, ':')
		if i <= 0 {
			return nil, fmt.Errorf("%w: header line %q", ErrMalformedRequest, line)
		}
		key := strings.ToLower(strings.TrimSpace(line[:i]))
		if _, ok := header[key]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateHeader, key)
		}
		header[key] = strings.TrimSpace(line[i+1:])
	}

	path, err := url.PathUnescape(rawPath)
	if err != nil {
		return nil, fmt.Errorf("%w: undecodable path %q", ErrMalformedRequest, rawPath)
	}

	var body []byte
	if v, ok := header["content-length"]; ok {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: content-length %q", ErrMalformedRequest, v)
		}
		if n > maxBody {
			return nil, fmt.Errorf("%w: declared body %d bytes", ErrRequestTooLarge, n)
		}
		if n > 0 {
			body = make([]byte, n)
			if _, err := io.ReadFull(r.BR, body); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrTruncatedBody, err)
			}
		}
	}

	return &Request{
		Method: strings.ToUpper(method),
		Path:   path,
		Proto:  proto,
		Header: header,
		Body:   body,
	}, nil
}

func parseRequestLine(line string) (method, path, proto string, err error) {
	parts := strings.Fields(line)
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("%w: request line %q", ErrMalformedRequest, line)
	}
	if !strings.HasPrefix(parts[2], "HTTP/") {
		return "", "", "", fmt.Errorf("%w: version %q", ErrMalformedRequest, parts[2])
	}
	return parts[0], parts[1], parts[2], nil
}

// readLine consumes bytes up to LF, dropping the CR, and charges them
// against the shared header budget.
func (r *Reader) readLine(total *int, max int) (string, error) {
	var sb strings.Builder
	for {
		b, err := r.BR.ReadByte()
		if err != nil {
			return "", err
		}
		*total++
		if *total > max {
			return "", ErrRequestTooLarge
		}
		if b == '\n' {
			return sb.String(), nil
		}
		if b != '\r' {
			sb.WriteByte(b)
		}
	}
}

// framingError folds low-level read failures into the parser taxonomy.
// Timeouts and connection resets pass through so the caller can tell a slow
// peer from a broken request.
func (r *Reader) framingError(err error) error {
	switch err {
	case io.EOF, io.ErrUnexpectedEOF:
		return fmt.Errorf("%w: connection closed mid-request", ErrMalformedRequest)
	case ErrRequestTooLarge:
		return ErrRequestTooLarge
	default:
		return err
	}
}
