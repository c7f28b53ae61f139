package out

import "context"

type requestIDKey struct{}

// ContextWithRequestID: идентификатор разрешения, уходит в бэкенд заголовком X-Request-ID
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey{}).(string)
	return requestID, ok && requestID != ""
}
