package testsupport

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"wharf/internal/httpwire"
)

// Request is what the fake daemon observed for one connection.
type Request struct {
	Method string
	Target string
	Path   string
	Query  string
	Host   string
	Header http.Header
}

// Handler writes a raw response for req onto w. The connection is closed
// after the handler returns.
type Handler func(req Request, w io.Writer)

// Daemon is a fake control-API daemon listening on a temporary unix socket.
// It parses each request head with net/http and replies with raw bytes so
// tests control the exact framing.
type Daemon struct {
	Socket string
	Host   string

	listener net.Listener
	handler  Handler
	wg       sync.WaitGroup

	mu       sync.Mutex
	requests []Request
}

// SocketPath returns a short unix socket path that is removed on cleanup.
// t.TempDir paths can exceed the sun_path limit on some platforms.
func SocketPath(t testing.TB) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "wharf")
	if err != nil {
		t.Fatalf("mkdir temp: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	return filepath.Join(dir, "d.sock")
}

// NewDaemon starts a fake daemon serving handler until the test ends.
func NewDaemon(t testing.TB, handler Handler) *Daemon {
	t.Helper()
	socket := SocketPath(t)
	ln, err := net.Listen("unix", socket)
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping fake daemon: %v", err)
		}
		t.Fatalf("listen %s: %v", socket, err)
	}
	d := &Daemon{
		Socket:   socket,
		Host:     "unix://" + socket,
		listener: ln,
		handler:  handler,
	}
	d.wg.Add(1)
	go d.serve()
	t.Cleanup(d.Close)
	return d
}

// Close stops accepting connections and waits for in-flight handlers.
func (d *Daemon) Close() {
	_ = d.listener.Close()
	d.wg.Wait()
}

// Requests returns the requests observed so far.
func (d *Daemon) Requests() []Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Request(nil), d.requests...)
}

func (d *Daemon) serve() {
	defer d.wg.Done()
	for {
		conn, err := d.listener.Accept()
		if err != nil {
			return
		}
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			defer conn.Close()
			d.handle(conn)
		}()
	}
}

func (d *Daemon) handle(conn net.Conn) {
	httpReq, err := http.ReadRequest(bufio.NewReader(conn))
	if err != nil {
		_, _ = io.WriteString(conn, "HTTP/1.1 400 Bad Request\r\nConnection: close\r\n\r\n")
		return
	}
	req := Request{
		Method: httpReq.Method,
		Target: httpReq.RequestURI,
		Path:   httpReq.URL.Path,
		Query:  httpReq.URL.RawQuery,
		Host:   httpReq.Host,
		Header: httpReq.Header,
	}
	d.mu.Lock()
	d.requests = append(d.requests, req)
	d.mu.Unlock()

	if d.handler != nil {
		d.handler(req, conn)
	}
}

// Routes dispatches on "METHOD /path" and replies 404 for anything else.
func Routes(routes map[string]Handler) Handler {
	return func(req Request, w io.Writer) {
		if h, ok := routes[req.Method+" "+req.Path]; ok {
			h(req, w)
			return
		}
		RespondJSON(http.StatusNotFound, `{"message":"page not found"}`)(req, w)
	}
}

// RespondRaw writes raw verbatim.
func RespondRaw(raw string) Handler {
	return func(_ Request, w io.Writer) {
		_, _ = io.WriteString(w, raw)
	}
}

// RespondJSON writes body with a Content-Length framed response.
func RespondJSON(status int, body string) Handler {
	return func(_ Request, w io.Writer) {
		fmt.Fprintf(w, "HTTP/1.1 %d %s\r\n", status, http.StatusText(status))
		fmt.Fprintf(w, "Api-Version: 1.43\r\nContent-Type: application/json\r\nContent-Length: %d\r\n\r\n", len(body))
		_, _ = io.WriteString(w, body)
	}
}

// RespondChunked writes segments as a chunked transfer-encoded body.
func RespondChunked(status int, segments ...string) Handler {
	return func(_ Request, w io.Writer) {
		fmt.Fprintf(w, "HTTP/1.1 %d %s\r\n", status, http.StatusText(status))
		_, _ = io.WriteString(w, "Content-Type: application/json\r\nTransfer-Encoding: chunked\r\n\r\n")
		cw := httpwire.NewChunkWriter(w)
		for _, seg := range segments {
			_, _ = cw.Write([]byte(seg))
		}
		_ = cw.Close()
	}
}

// Hang accepts the request and never answers until the daemon closes.
func Hang(release <-chan struct{}) Handler {
	return func(Request, io.Writer) {
		<-release
	}
}
