package httpwire

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// MaxLineLength bounds status, header, and chunk-size lines.
const MaxLineLength = 8 << 10

const crlf = "\r\n"

var (
	errMissingCRLF  = errors.New("line not terminated by CRLF")
	errLineTooLong  = errors.New("line too long")
	errHeaderEOF    = errors.New("stream ended before end of headers")
	errStatusFormat = errors.New("want HTTP/<version> <3-digit code> [reason]")
)

// readLine reads one CRLF-terminated line and returns it without the
// terminator. io.EOF is returned only when the stream ends cleanly before any
// byte of the line was read.
func readLine(r *bufio.Reader) (string, error) {
	raw, err := r.ReadSlice('\n')
	switch {
	case errors.Is(err, bufio.ErrBufferFull):
		return "", errLineTooLong
	case errors.Is(err, io.EOF):
		if len(raw) == 0 {
			return "", io.EOF
		}
		return "", errMissingCRLF
	case err != nil:
		return "", err
	}
	line := string(raw)
	if !strings.HasSuffix(line, crlf) {
		return "", errMissingCRLF
	}
	return line[:len(line)-len(crlf)], nil
}

// NewReader wraps r in a buffered reader sized for MaxLineLength. An existing
// *bufio.Reader of sufficient size is returned as is.
func NewReader(r io.Reader) *bufio.Reader {
	if br, ok := r.(*bufio.Reader); ok && br.Size() >= MaxLineLength {
		return br
	}
	return bufio.NewReaderSize(r, MaxLineLength)
}
