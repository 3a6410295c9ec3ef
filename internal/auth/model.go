package auth

import (
	"strings"
)

const (
	MAX_TOKEN_LENGTH = 72
	MIN_TOKEN_LENGTH = 12
	MAX_ACTOR_LENGTH = 255
)

const (
	AuthorizationHeader = "Authorization"
	ActorHeader         = "X-Actor"
)

// Admin is the caller resolved from a request: who acts, and whether the token matched.
type Admin struct {
	Actor         string
	Authenticated bool
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header value.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
