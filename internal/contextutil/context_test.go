package contextutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	require.Equal(t, "unknown-trace-id", TraceIDFromContext(ctx))

	ctx = WithTraceID(ctx)
	first := TraceIDFromContext(ctx)
	require.NotEqual(t, "unknown-trace-id", first)

	// an existing trace id is kept
	require.Equal(t, first, TraceIDFromContext(WithTraceID(ctx)))
}

func TestActor(t *testing.T) {
	ctx := context.Background()
	require.Equal(t, "", ActorFromContext(ctx))
	require.Equal(t, "admin", ActorFromContext(WithActor(ctx, "admin")))
}
