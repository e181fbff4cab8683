package docker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"wharf/internal/config"
	"wharf/internal/httpwire"
	"wharf/internal/logging"
	"wharf/internal/transport"
)

const defaultHostName = "localhost"

// Client talks to one daemon endpoint. It holds no connection state and is
// safe for concurrent use; every request dials its own connection.
type Client struct {
	endpoint transport.Endpoint
	hostName string
	dialer   transport.Dialer
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHostName sets the value sent in the Host header.
func WithHostName(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.hostName = name
		}
	}
}

// WithTimeout bounds dialing and every idle read or write. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.dialer.Timeout = d
	}
}

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New returns a client for endpoint.
func New(endpoint transport.Endpoint, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		hostName: defaultHostName,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.NewComponentLogger(c.logger, "docker")
	return c
}

// NewFromConfig builds a client from the [daemon] section.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	ep, err := cfg.Endpoint()
	if err != nil {
		return nil, err
	}
	return New(ep,
		WithHostName(cfg.Daemon.HostName),
		WithTimeout(cfg.Timeout()),
		WithLogger(logger),
	), nil
}

// Endpoint returns the daemon address the client dials.
func (c *Client) Endpoint() transport.Endpoint { return c.endpoint }

// Request sends a bodyless request and returns the response once its header
// block has been consumed. The caller must close Response.Body, which closes
// the connection. Cancelling ctx also closes the connection, unblocking any
// pending read.
func (c *Client) Request(ctx context.Context, method, path string) (*httpwire.Response, error) {
	ctx, _ = logging.EnsureRequestID(ctx)
	logger := logging.WithContext(ctx, c.logger).With(
		slog.String(logging.FieldMethod, method),
		slog.String(logging.FieldPath, path),
	)

	conn, err := c.dialer.DialContext(ctx, c.endpoint)
	if err != nil {
		logger.Debug("dial failed", slog.String(logging.FieldEndpoint, c.endpoint.String()), logging.Error(err))
		return nil, err
	}
	owned := newOwnedConn(ctx, conn)

	if err := httpwire.WriteRequest(conn, method, path, c.hostName); err != nil {
		_ = owned.Close()
		return nil, owned.cause(err)
	}

	resp, err := httpwire.ReadResponse(httpwire.NewReader(conn), owned)
	if err != nil {
		_ = owned.Close()
		logger.Debug("read response failed", logging.Error(err))
		return nil, owned.cause(err)
	}
	logger.Debug("response received", slog.Int(logging.FieldStatus, resp.Status))
	return resp, nil
}

// ownedConn closes the connection exactly once, either when the response
// body is closed or when the request context ends.
type ownedConn struct {
	ctx  context.Context
	conn net.Conn
	stop func() bool
	once sync.Once
	err  error
}

func newOwnedConn(ctx context.Context, conn net.Conn) *ownedConn {
	oc := &ownedConn{ctx: ctx, conn: conn}
	oc.stop = context.AfterFunc(ctx, func() { _ = oc.Close() })
	return oc
}

func (oc *ownedConn) Close() error {
	oc.once.Do(func() {
		oc.stop()
		oc.err = oc.conn.Close()
	})
	return oc.err
}

// cause prefers the context error when a read failed because cancellation
// closed the socket underneath it.
func (oc *ownedConn) cause(err error) error {
	if ctxErr := oc.ctx.Err(); ctxErr != nil && (errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrUnexpectedEOF)) {
		return ctxErr
	}
	return err
}
