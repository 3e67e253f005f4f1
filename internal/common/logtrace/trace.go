package logtrace

import (
	"context"
	"os"
)

// requestIdKey is the context key under which the request ID is stored.
type requestIdCtxKey struct{}

// WithRequestId stores the request ID in the context.
func WithRequestId(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIdCtxKey{}, id)
}

// RequestIdFromContext extracts the request ID from the context.
// Returns an empty string if the context is nil or carries no request ID.
func RequestIdFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	r, ok := ctx.Value(requestIdCtxKey{}).(string)
	if !ok {
		return ""
	}
	return r
}

// IsTraceEnabled reports whether route tracing is enabled for this process.
func IsTraceEnabled() bool {
	return os.Getenv("COURTSRV_TRACE") != ""
}
