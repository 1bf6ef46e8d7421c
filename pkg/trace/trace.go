package trace

import (
	"context"

	"github.com/google/uuid"
)

// HeaderName is the request/response header carrying the trace id.
const HeaderName = "X-Trace-ID"

// RequestIDHeader is accepted as a fallback source for the trace id.
const RequestIDHeader = "X-Request-ID"

type ctxKey struct{}

// GenerateTraceID returns a new random trace id.
func GenerateTraceID() string {
	return uuid.NewString()
}

// FromContext returns the trace id stored in ctx, or "".
func FromContext(ctx context.Context) string {
	if traceID, ok := ctx.Value(ctxKey{}).(string); ok {
		return traceID
	}
	return ""
}

// WithContext stores traceID in ctx.
func WithContext(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, traceID)
}

// FromHeaders picks the incoming trace id, preferring X-Trace-ID over
// X-Request-ID, and generates one when neither is set.
func FromHeaders(traceHeader, requestIDHeader string) string {
	if traceHeader != "" {
		return traceHeader
	}
	if requestIDHeader != "" {
		return requestIDHeader
	}
	return GenerateTraceID()
}
