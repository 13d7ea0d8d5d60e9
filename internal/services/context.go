package services

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	methodKey    contextKey = "method"
)

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithMethod annotates context with the protocol method being serviced.
func WithMethod(ctx context.Context, method string) context.Context {
	if method == "" {
		return ctx
	}
	return context.WithValue(ctx, methodKey, method)
}

// MethodFromContext returns the method name if present.
func MethodFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(methodKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
