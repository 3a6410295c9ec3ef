package customErrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	base := New(ErrNotFound, "budget for event '%s' not found", "evt1")
	wrapped := fmt.Errorf("failed to add category: %w", base)

	require.True(t, HasCode(base, ErrNotFound))
	require.True(t, HasCode(wrapped, ErrNotFound))
	require.False(t, HasCode(wrapped, ErrConflict))
	require.False(t, HasCode(errors.New("plain"), ErrNotFound))
	require.False(t, HasCode(nil, ErrNotFound))
}

func TestCodeAndMessageOf(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", New(ErrInvalidInput, "amount must be positive"))

	require.Equal(t, ErrInvalidInput, CodeOf(wrapped))
	require.Equal(t, "amount must be positive", MessageOf(wrapped))

	plain := errors.New("boom")
	require.Equal(t, ErrInternal, CodeOf(plain))
	require.Equal(t, "boom", MessageOf(plain))
}
