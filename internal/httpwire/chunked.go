package httpwire

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

// MaxChunkSize bounds a single declared chunk so a corrupt size line cannot
// force an arbitrarily large allocation.
const MaxChunkSize = 64 << 20

// ChunkReader decodes a chunked transfer-encoded body into payload segments.
//
// The sequence is finite and cannot be replayed: every call advances the
// underlying stream. Errors are sticky, so once Next fails it keeps returning
// the same error. Trailers after the terminating zero-size chunk are not read.
type ChunkReader struct {
	r        *bufio.Reader
	err      error
	pending  []byte
	segments int
}

// NewChunkReader returns a decoder positioned at the first chunk-size line.
func NewChunkReader(r io.Reader) *ChunkReader {
	if u, ok := r.(interface{ Unwrap() io.Reader }); ok {
		r = u.Unwrap()
	}
	return &ChunkReader{r: NewReader(r)}
}

// Next returns the next chunk payload. It returns io.EOF after the zero-size
// chunk. The returned slice is owned by the caller.
func (c *ChunkReader) Next() ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	seg, err := c.next()
	if err != nil {
		c.err = err
		return nil, err
	}
	c.segments++
	return seg, nil
}

func (c *ChunkReader) next() ([]byte, error) {
	var size int
	for {
		line, err := readLine(c.r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, &ProtocolError{Op: "read chunk size", Err: err}
		}
		if line == "" {
			continue
		}
		size, err = ParseChunkSize(line)
		if err != nil {
			return nil, &ProtocolError{Op: "parse chunk size", Line: line, Err: err}
		}
		break
	}
	if size == 0 {
		return nil, io.EOF
	}

	payload := make([]byte, size)
	if n, err := io.ReadFull(c.r, payload); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &TruncatedBodyError{Want: size, Got: n}
		}
		return nil, err
	}

	var term [2]byte
	if n, err := io.ReadFull(c.r, term[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &TruncatedBodyError{Want: size + len(term), Got: size + n}
		}
		return nil, err
	}
	if string(term[:]) != crlf {
		return nil, &ProtocolError{Op: "read chunk terminator", Line: string(term[:]), Err: errMissingCRLF}
	}
	return payload, nil
}

// Segments reports how many payload segments have been returned so far.
func (c *ChunkReader) Segments() int { return c.segments }

// All adapts the reader to a range-over-func sequence. Iteration stops
// cleanly at end of body; any other error is yielded once as the final pair.
func (c *ChunkReader) All() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for {
			seg, err := c.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(seg, nil) {
				return
			}
		}
	}
}

// Read implements io.Reader over the concatenated chunk payloads.
func (c *ChunkReader) Read(p []byte) (int, error) {
	for len(c.pending) == 0 {
		seg, err := c.Next()
		if err != nil {
			return 0, err
		}
		c.pending = seg
	}
	n := copy(p, c.pending)
	c.pending = c.pending[n:]
	return n, nil
}

// ParseChunkSize parses a chunk-size line without its CRLF terminator.
// Chunk extensions after ';' and surrounding whitespace are ignored.
func ParseChunkSize(line string) (int, error) {
	field, _, _ := strings.Cut(line, ";")
	field = strings.Trim(field, " \t")
	if field == "" {
		return 0, errors.New("empty chunk size")
	}
	size, err := strconv.ParseUint(field, 16, 63)
	if err != nil {
		return 0, fmt.Errorf("invalid hex chunk size: %w", err)
	}
	if size > MaxChunkSize {
		return 0, fmt.Errorf("chunk size %d exceeds limit %d", size, MaxChunkSize)
	}
	return int(size), nil
}
