package auth

import (
	"fmt"
	"strings"

	appErrors "github.com/fatali-fataliyev/event_finance/customErrors"
	"golang.org/x/crypto/bcrypt"
)

func HashToken(token string) (string, error) {
	if len(token) < MIN_TOKEN_LENGTH {
		return "", appErrors.New(appErrors.ErrInvalidInput, "token is too short, minimum length is %d", MIN_TOKEN_LENGTH)
	}
	if len(token) > MAX_TOKEN_LENGTH {
		return "", appErrors.New(appErrors.ErrInvalidInput, "token so long, maximum length is %d", MAX_TOKEN_LENGTH)
	}
	hashedToken, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash plain token to hashed token: %w", err)
	}
	return string(hashedToken), nil
}

func CompareToken(hashedToken string, plainToken string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedToken), []byte(plainToken))
	return err == nil
}

// Authenticator guards the admin API with one bcrypt-hashed shared token.
// With an empty hash every request is let through (local development).
type Authenticator struct {
	tokenHash string
}

func NewAuthenticator(tokenHash string) Authenticator {
	return Authenticator{tokenHash: strings.TrimSpace(tokenHash)}
}

func (a Authenticator) Enabled() bool {
	return a.tokenHash != ""
}

// Authenticate checks the Authorization header value and resolves the acting admin.
func (a Authenticator) Authenticate(authorization string, actor string) (Admin, error) {
	actor = strings.TrimSpace(actor)
	if len(actor) > MAX_ACTOR_LENGTH {
		return Admin{}, appErrors.New(appErrors.ErrInvalidInput, "actor so long, maximum length is %d", MAX_ACTOR_LENGTH)
	}
	if !a.Enabled() {
		return Admin{Actor: actor}, nil
	}

	token := BearerToken(authorization)
	if token == "" {
		return Admin{}, appErrors.New(appErrors.ErrAuth, "missing bearer token")
	}
	if !CompareToken(a.tokenHash, token) {
		return Admin{}, appErrors.New(appErrors.ErrAuth, "invalid token")
	}
	return Admin{Actor: actor, Authenticated: true}, nil
}
