package contextutil

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const TraceIDKey contextKey = "traceID"
const ActorKey contextKey = "actor"

func TraceIDFromContext(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return "unknown-trace-id"
	}
	return traceID
}

// WithTraceID attaches a fresh trace id unless ctx already carries one.
func WithTraceID(ctx context.Context) context.Context {
	if _, ok := ctx.Value(TraceIDKey).(string); ok {
		return ctx
	}
	return context.WithValue(ctx, TraceIDKey, uuid.New().String())
}

func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

func ActorFromContext(ctx context.Context) string {
	actor, ok := ctx.Value(ActorKey).(string)
	if !ok {
		return ""
	}
	return actor
}
