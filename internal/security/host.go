// Package security holds the checks every request must clear before any
// handler runs: Host header validation against the bound endpoint, and path
// confinement to the serving root.
package security

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingHost means the request carried no Host header at all.
	ErrMissingHost = errors.New("security: missing Host header")
	// ErrForbiddenHost means the Host header named an endpoint this server
	// is not bound to. Blocks DNS-rebinding style requests.
	ErrForbiddenHost = errors.New("security: invalid Host header")
)

// HostValidator checks Host headers against the endpoint the listener is
// actually bound to.
type HostValidator struct {
	allowed map[string]struct{}
}

// NewHostValidator builds the allow-list for a bound (host, port) pair:
// host:port, localhost:port and 127.0.0.1:port, plus the bare-host forms
// when the port is the default HTTP port.
func NewHostValidator(host string, port int) *HostValidator {
	allowed := map[string]struct{}{
		fmt.Sprintf("%s:%d", host, port):  {},
		fmt.Sprintf("localhost:%d", port): {},
		fmt.Sprintf("127.0.0.1:%d", port): {},
	}
	if port == 80 {
		allowed[host] = struct{}{}
		allowed["localhost"] = struct{}{}
		allowed["127.0.0.1"] = struct{}{}
	}
	return &HostValidator{allowed: allowed}
}

// Validate returns nil when hostHeader names this server.
func (v *HostValidator) Validate(hostHeader string) error {
	if hostHeader == "" {
		return ErrMissingHost
	}
	if _, ok := v.allowed[hostHeader]; !ok {
		return fmt.Errorf("%w: %q", ErrForbiddenHost, hostHeader)
	}
	return nil
}
