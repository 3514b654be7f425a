package kernel

import "context"

// ContextKey namespaces values stored in context.Context.
type ContextKey string

const (
	// RequestIDKey holds the X-Request-ID of the current request.
	RequestIDKey ContextKey = "request_id"

	// ClientIPKey holds the rate limiting identity of the caller.
	ClientIPKey ContextKey = "client_ip"
)

// RequestIDFrom returns the request id stored in ctx, if any.
func RequestIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// WithRequestID stores id in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// WithClientIP stores the caller identity in ctx.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ClientIPKey, ip)
}
