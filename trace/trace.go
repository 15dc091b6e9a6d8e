// Package trace carries request correlation IDs through context so that
// outbound requests can be tied back to the operation that produced them.
package trace

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is a private type so context values cannot collide with other packages.
type contextKey string

const requestIDKey contextKey = "request_id"

// HeaderRequestID is the header the fetch client uses to propagate the
// correlation ID to downstream services.
const HeaderRequestID = "X-Request-ID"

// WithRequestID returns a context carrying the given correlation ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the correlation ID from ctx if one is present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if id, ok := ctx.Value(requestIDKey).(string); ok && id != "" {
		return id, true
	}
	return "", false
}

// EnsureRequestID returns the correlation ID from ctx, generating a new
// UUID when none is present.
func EnsureRequestID(ctx context.Context) string {
	if id, ok := RequestIDFromContext(ctx); ok {
		return id
	}
	return uuid.New().String()
}
