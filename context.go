package iacrm

import (
	"context"

	"github.com/google/uuid"
)

type requestIDContextKey struct{}

// WithRequestID attaches a caller-chosen request identifier to ctx. The
// Client stamps it on every audit event emitted for that request; when no
// identifier is present one is generated per authorization failure.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, id)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}

func ensureRequestID(ctx context.Context) (context.Context, string) {
	if id := requestIDFromContext(ctx); id != "" {
		return ctx, id
	}

	id := uuid.NewString()
	return WithRequestID(ctx, id), id
}
