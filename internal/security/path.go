package security

import (
	"errors"
	"path"
	"regexp"
	"strings"
)

// ErrUnsafePath marks a request path that tried to escape the serving root.
var ErrUnsafePath = errors.New("security: unsafe path")

// traversalPattern catches dot-segment shapes that survive the plain
// substring checks: "..", "./", "/.", "\." and a leading slash.
var traversalPattern = regexp.MustCompile(`(\.\.)|(\./)|(/\.)|(\\\.)|(^/)`)

// SanitizePath maps a percent-decoded request path to a relative path that
// is safe to join with the serving root. The empty path and "/" resolve to
// defaultDoc. Anything carrying a parent-directory segment, a backslash or a
// dot-segment pattern is rejected, and the normalized result is re-checked
// so normalization itself can never reintroduce an escape.
func SanitizePath(reqPath, defaultDoc string) (string, error) {
	p := strings.TrimPrefix(reqPath, "/")
	if p == "" || p == "/" {
		p = defaultDoc
	}

	if strings.Contains(p, "..") || strings.HasPrefix(p, "/") || strings.Contains(p, `\`) {
		return "", ErrUnsafePath
	}
	if traversalPattern.MatchString(p) {
		return "", ErrUnsafePath
	}

	clean := path.Clean(p)
	if strings.HasPrefix(clean, "..") || path.IsAbs(clean) {
		return "", ErrUnsafePath
	}
	return clean, nil
}
