package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldCorrelationID is the standardized key for per-request correlation identifiers.
	FieldCorrelationID = "correlation_id"
	// FieldError is the standardized key for error values.
	FieldError = "error"
	// FieldEndpoint is the daemon address a request was sent to.
	FieldEndpoint = "endpoint"
	// FieldMethod is the HTTP method of a daemon request.
	FieldMethod = "method"
	// FieldPath is the HTTP request target of a daemon request.
	FieldPath = "path"
	// FieldStatus is the HTTP status code returned by the daemon.
	FieldStatus = "status"
	// FieldImage is an image reference.
	FieldImage = "image"
	// FieldLayer is an image layer ID reported in pull progress.
	FieldLayer = "layer"
)

type requestIDKey struct{}

// NewRequestID returns a fresh correlation ID.
func NewRequestID() string {
	return uuid.NewString()
}

// WithRequestID stores a correlation ID on ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the correlation ID stored on ctx, if any.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// EnsureRequestID returns ctx carrying a correlation ID, generating one when
// absent.
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if id, ok := RequestIDFromContext(ctx); ok {
		return ctx, id
	}
	id := NewRequestID()
	return WithRequestID(ctx, id), id
}

// WithContext returns a logger augmented with structured fields derived from
// the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if id, ok := RequestIDFromContext(ctx); ok {
		return logger.With(slog.String(FieldCorrelationID, id))
	}
	return logger
}
