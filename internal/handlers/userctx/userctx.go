package userctx

import (
	"context"

	"github.com/phamtheduy/portfolio/internal/service/auth/tokenmanager"
)

type ctxKey string

const payloadKey ctxKey = "tokenpayload"

// Create a new context carrying the verified token payload
func New(ctx context.Context, payload tokenmanager.Payload) context.Context {
	return context.WithValue(ctx, payloadKey, payload)
}

// Extract the verified token payload from the context
func FromContext(ctx context.Context) (tokenmanager.Payload, bool) {
	payload, ok := ctx.Value(payloadKey).(tokenmanager.Payload)
	return payload, ok
}
