package auth

import (
	"testing"

	appErrors "github.com/fatali-fataliyev/event_finance/customErrors"
	"github.com/stretchr/testify/require"
)

func TestHashToken(t *testing.T) {
	plain := "messi10-super-secret"

	hash, err := HashToken(plain)
	require.NoError(t, err)
	require.True(t, CompareToken(hash, plain))
	require.False(t, CompareToken(hash, "messi10"))

	_, err = HashToken("short")
	require.True(t, appErrors.HasCode(err, appErrors.ErrInvalidInput))
}

func TestBearerToken(t *testing.T) {
	require.Equal(t, "abc", BearerToken("Bearer abc"))
	require.Equal(t, "abc", BearerToken("  bearer   abc "))
	require.Equal(t, "", BearerToken("Basic abc"))
	require.Equal(t, "", BearerToken(""))
}

func TestAuthenticate(t *testing.T) {
	plain := "admin-token-123456"
	hash, err := HashToken(plain)
	require.NoError(t, err)

	tests := []struct {
		name          string
		authenticator Authenticator
		header        string
		actor         string
		wantCode      string
		wantAuth      bool
	}{
		{name: "Disabled lets everyone in", authenticator: NewAuthenticator(""), actor: "alice"},
		{name: "Missing token", authenticator: NewAuthenticator(hash), wantCode: appErrors.ErrAuth},
		{name: "Wrong token", authenticator: NewAuthenticator(hash), header: "Bearer nope", wantCode: appErrors.ErrAuth},
		{name: "Valid token", authenticator: NewAuthenticator(hash), header: "Bearer " + plain, actor: "alice", wantAuth: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			admin, err := tt.authenticator.Authenticate(tt.header, tt.actor)
			if tt.wantCode != "" {
				require.True(t, appErrors.HasCode(err, tt.wantCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.actor, admin.Actor)
			require.Equal(t, tt.wantAuth, admin.Authenticated)
		})
	}
}
