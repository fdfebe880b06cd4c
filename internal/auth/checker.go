package auth

import (
	"context"

	"github.com/google/uuid"
)

var _ Checker = (*LoginChecker)(nil)
var _ UserVerifier = (*TokenVerifier)(nil)

// Checker validates admin session tokens.
type Checker interface {
	IsLogged(ctx context.Context, token string) (bool, error)
}

// UserVerifier resolves a bearer token to the authenticated user id.
type UserVerifier interface {
	Verify(token string) (uuid.UUID, error)
}
