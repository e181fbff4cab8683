package docker

import (
	"fmt"
	"strconv"
)

// DecodeError reports payload bytes that are not valid text or JSON where the
// operation requires it.
type DecodeError struct {
	Subject string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Subject, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// PullError is a failure the daemon reported in-band on the progress stream.
type PullError struct {
	Image   string
	Code    int
	Message string
}

func (e *PullError) Error() string {
	msg := "pull " + e.Image + ": " + e.Message
	if e.Code != 0 {
		msg += " (code " + strconv.Itoa(e.Code) + ")"
	}
	return msg
}
