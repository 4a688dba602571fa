package apiclient

import (
	"context"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// WithRequestID makes calls issued with ctx send id as their X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
