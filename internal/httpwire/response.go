package httpwire

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Response is a daemon reply whose header block has been consumed. Body is
// positioned at the first content byte and owns the connection: closing it
// closes the socket.
type Response struct {
	Status int
	Body   io.ReadCloser
}

// ReadStatus reads the status line and returns its numeric code.
//
// The line is tokenized as "HTTP/<version> <code>...". The code is the three
// bytes after the first space; whatever follows them is ignored, so a
// missing or unusual reason separator is tolerated.
func ReadStatus(r *bufio.Reader) (int, error) {
	line, err := readLine(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return 0, &ProtocolError{Op: "read status line", Err: err}
	}
	code, err := ParseStatusLine(line)
	if err != nil {
		return 0, &ProtocolError{Op: "parse status line", Line: line, Err: err}
	}
	return code, nil
}

// ParseStatusLine extracts the status code from a status line without its
// CRLF terminator. The code field is three ASCII digits, or '+' followed by
// two digits. Negative codes are rejected.
func ParseStatusLine(line string) (int, error) {
	version, rest, ok := strings.Cut(line, " ")
	if !ok {
		return 0, errStatusFormat
	}
	if !strings.HasPrefix(version, "HTTP/") || len(version) == len("HTTP/") {
		return 0, errStatusFormat
	}
	if len(rest) < 3 {
		return 0, errStatusFormat
	}
	code := rest[:3]
	if code[0] == '+' {
		code = code[1:]
	}
	status := 0
	for i := 0; i < len(code); i++ {
		c := code[i]
		if c < '0' || c > '9' {
			return 0, errStatusFormat
		}
		status = status*10 + int(c-'0')
	}
	return status, nil
}

// SkipHeaders discards header lines up to and including the blank line that
// ends the header block. Header values are never inspected.
func SkipHeaders(r *bufio.Reader) error {
	for {
		line, err := readLine(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = errHeaderEOF
			}
			return &ProtocolError{Op: "read header", Err: err}
		}
		if line == "" {
			return nil
		}
	}
}

// ReadResponse consumes the status line and header block from r and returns
// a Response whose Body continues reading from r. closer is closed together
// with the body. On error nothing is closed; the caller still owns closer.
func ReadResponse(r *bufio.Reader, closer io.Closer) (*Response, error) {
	status, err := ReadStatus(r)
	if err != nil {
		return nil, err
	}
	if err := SkipHeaders(r); err != nil {
		return nil, err
	}
	return &Response{
		Status: status,
		Body:   &body{r: r, closer: closer},
	}, nil
}

type body struct {
	r      io.Reader
	closer io.Closer
}

func (b *body) Read(p []byte) (int, error) { return b.r.Read(p) }

func (b *body) Close() error {
	if b.closer == nil {
		return nil
	}
	err := b.closer.Close()
	b.closer = nil
	return err
}

// Unwrap exposes the buffered reader so chunk decoding reuses it instead of
// stacking a second buffer on top.
func (b *body) Unwrap() io.Reader { return b.r }
