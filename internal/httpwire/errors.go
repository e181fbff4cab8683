package httpwire

import (
	"fmt"
	"strconv"
)

// ProtocolError reports a response that does not follow the framing rules:
// a malformed status line, a bad chunk-size line, or a corrupt chunk
// terminator. It is terminal for the request.
type ProtocolError struct {
	Op   string
	Line string
	Err  error
}

func (e *ProtocolError) Error() string {
	msg := "protocol error: " + e.Op
	if e.Line != "" {
		msg += " " + strconv.Quote(e.Line)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// TruncatedBodyError reports that the stream ended inside a chunk.
type TruncatedBodyError struct {
	Want int
	Got  int
}

func (e *TruncatedBodyError) Error() string {
	return fmt.Sprintf("chunked body truncated: want %d bytes, got %d", e.Want, e.Got)
}

// StatusError reports a status code other than the one an operation requires.
type StatusError struct {
	Code int
	Want int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("daemon returned status %d, want %d", e.Code, e.Want)
}

// ExpectStatus returns a *StatusError when resp does not carry the wanted code.
func ExpectStatus(resp *Response, want int) error {
	if resp == nil {
		return &StatusError{Want: want}
	}
	if resp.Status != want {
		return &StatusError{Code: resp.Status, Want: want}
	}
	return nil
}
