package transport

import (
	"fmt"
	"net"
	"path/filepath"
	"strings"
)

// Scheme identifies the kind of local stream an endpoint names.
type Scheme string

const (
	SchemeUnix      Scheme = "unix"
	SchemeTCP       Scheme = "tcp"
	SchemeNamedPipe Scheme = "npipe"
)

// Endpoint is a parsed daemon address.
type Endpoint struct {
	Scheme  Scheme
	Address string
}

// String renders the endpoint in DOCKER_HOST form.
func (e Endpoint) String() string {
	return string(e.Scheme) + "://" + e.Address
}

// ParseEndpoint parses a DOCKER_HOST style address. A bare absolute path is
// treated as a unix socket.
func ParseEndpoint(raw string) (Endpoint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Endpoint{}, fmt.Errorf("parse endpoint: address is empty")
	}

	scheme, addr, ok := strings.Cut(raw, "://")
	if !ok {
		if filepath.IsAbs(raw) || strings.HasPrefix(raw, "/") {
			return Endpoint{Scheme: SchemeUnix, Address: raw}, nil
		}
		return Endpoint{}, fmt.Errorf("parse endpoint %q: missing scheme", raw)
	}
	if addr == "" {
		return Endpoint{}, fmt.Errorf("parse endpoint %q: missing address", raw)
	}

	switch Scheme(strings.ToLower(scheme)) {
	case SchemeUnix:
		return Endpoint{Scheme: SchemeUnix, Address: addr}, nil
	case SchemeTCP:
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return Endpoint{}, fmt.Errorf("parse endpoint %q: %w", raw, err)
		}
		return Endpoint{Scheme: SchemeTCP, Address: addr}, nil
	case SchemeNamedPipe:
		return Endpoint{Scheme: SchemeNamedPipe, Address: addr}, nil
	default:
		return Endpoint{}, fmt.Errorf("parse endpoint %q: unsupported scheme %q", raw, scheme)
	}
}
