package logger

import (
	"context"

	"go.uber.org/zap"
)

// contextKey is unexported so nothing outside this package can collide
// with the values we stash on a request context.
type contextKey int

const requestIDKey contextKey = iota

// WithRequestID stores the request id for the lifetime of the request.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFrom returns the request id, or "" outside a request scope.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// FromCtx returns the global logger scoped to the current request: when a
// request id is present every entry carries it, which is what ties an order
// checkout to its gateway calls in the logs.
func FromCtx(ctx context.Context) *zap.Logger {
	id := RequestIDFrom(ctx)
	if id == "" {
		return L()
	}
	return L().With(zap.String("request_id", id))
}
