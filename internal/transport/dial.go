package transport

import (
	"context"
	"errors"
	"net"
	"time"
)

var errPipeUnsupported = errors.New("named pipes unsupported")

// Dialer opens connections to a daemon endpoint.
type Dialer struct {
	// Timeout bounds the dial and, when positive, every subsequent read and
	// write on the returned connection. Zero blocks indefinitely.
	Timeout time.Duration
}

// DialContext connects to ep. Failures are returned as *ConnectionError.
func (d Dialer) DialContext(ctx context.Context, ep Endpoint) (net.Conn, error) {
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	var (
		conn net.Conn
		err  error
	)
	switch ep.Scheme {
	case SchemeUnix, SchemeTCP:
		var nd net.Dialer
		conn, err = nd.DialContext(ctx, string(ep.Scheme), ep.Address)
	case SchemeNamedPipe:
		conn, err = dialPipe(ctx, ep.Address)
		if errors.Is(err, errPipeUnsupported) {
			return nil, &ConnectionError{Endpoint: ep, Reason: ReasonUnsupported}
		}
	default:
		return nil, &ConnectionError{Endpoint: ep, Reason: ReasonUnsupported}
	}
	if err != nil {
		return nil, &ConnectionError{Endpoint: ep, Reason: classify(err), Err: err}
	}

	if d.Timeout > 0 {
		return &deadlineConn{Conn: conn, timeout: d.Timeout}, nil
	}
	return conn, nil
}

// Dial connects to ep with the zero Dialer.
func Dial(ctx context.Context, ep Endpoint) (net.Conn, error) {
	return Dialer{}.DialContext(ctx, ep)
}

// deadlineConn refreshes the I/O deadline before every read and write, so the
// limit applies to idle time rather than to the whole response.
type deadlineConn struct {
	net.Conn
	timeout time.Duration
}

func (c *deadlineConn) Read(p []byte) (int, error) {
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Read(p)
}

func (c *deadlineConn) Write(p []byte) (int, error) {
	if err := c.Conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Write(p)
}
