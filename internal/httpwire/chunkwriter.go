package httpwire

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// ChunkWriter frames writes as chunked transfer encoding. Each non-empty
// Write becomes exactly one chunk; Close writes the terminating zero-size
// chunk. It does not close the underlying writer.
type ChunkWriter struct {
	w      io.Writer
	closed bool
}

// NewChunkWriter returns a ChunkWriter that frames onto w.
func NewChunkWriter(w io.Writer) *ChunkWriter {
	return &ChunkWriter{w: w}
}

// Write emits p as a single chunk. Empty writes produce no output because a
// zero-size chunk would end the body.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	if cw.closed {
		return 0, fmt.Errorf("write chunk: %w", io.ErrClosedPipe)
	}
	if len(p) == 0 {
		return 0, nil
	}
	frame := make([]byte, 0, len(p)+20)
	frame = strconv.AppendUint(frame, uint64(len(p)), 16)
	frame = append(frame, crlf...)
	frame = append(frame, p...)
	frame = append(frame, crlf...)
	if _, err := cw.w.Write(frame); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close writes the terminating zero-size chunk with an empty trailer section.
func (cw *ChunkWriter) Close() error {
	if cw.closed {
		return nil
	}
	cw.closed = true
	_, err := io.WriteString(cw.w, "0"+crlf+crlf)
	return err
}

// EncodeChunks frames segments as a complete chunked body.
func EncodeChunks(segments ...[]byte) []byte {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf)
	for _, seg := range segments {
		_, _ = cw.Write(seg)
	}
	_ = cw.Close()
	return buf.Bytes()
}
