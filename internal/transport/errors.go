package transport

import (
	"errors"
	"io/fs"
)

// Reason classifies why a connection could not be established.
type Reason string

const (
	ReasonNotFound         Reason = "not_found"
	ReasonPermissionDenied Reason = "permission_denied"
	ReasonRefused          Reason = "refused"
	ReasonUnsupported      Reason = "unsupported"
	ReasonOther            Reason = "other"
)

// ConnectionError reports a failure to open the transport to the daemon.
type ConnectionError struct {
	Endpoint Endpoint
	Reason   Reason
	Err      error
}

func (e *ConnectionError) Error() string {
	msg := "connect to daemon at " + e.Endpoint.String()
	switch e.Reason {
	case ReasonNotFound:
		msg += ": socket not found"
	case ReasonPermissionDenied:
		msg += ": permission denied"
	case ReasonRefused:
		msg += ": connection refused"
	case ReasonUnsupported:
		msg += ": transport not supported on this platform"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func classify(err error) Reason {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ReasonNotFound
	case errors.Is(err, fs.ErrPermission):
		return ReasonPermissionDenied
	case isRefused(err):
		return ReasonRefused
	default:
		return ReasonOther
	}
}
