package mailer

import (
	"context"
	"log/slog"
)

type dispatchIDKey struct{}

// WithDispatchID returns a context carrying the dispatch identifier.
func WithDispatchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, dispatchIDKey{}, id)
}

// DispatchID returns the dispatch identifier stored in ctx, if any.
func DispatchID(ctx context.Context) string {
	id, _ := ctx.Value(dispatchIDKey{}).(string)
	return id
}

// DispatchIDAttr extracts the dispatch identifier as a log attribute.
// Its signature matches logger.ContextExtractor.
func DispatchIDAttr(ctx context.Context) (slog.Attr, bool) {
	if id := DispatchID(ctx); id != "" {
		return slog.String("dispatch_id", id), true
	}
	return slog.Attr{}, false
}
