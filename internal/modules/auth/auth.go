package auth

import (
	"context"
	"errors"
)

// ErrInvalidCredentials is returned when the shared secret does not
// match or the principal is not the registered owner.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service defines the interface for authentication-related business logic.
type Service interface {
	// IssueToken exchanges the shared API secret plus the owner's
	// principal id for a signed bearer token.
	IssueToken(ctx context.Context, principalID int64, secret string) (string, error)

	// ParseToken validates a bearer token and returns the principal id
	// it was issued to.
	ParseToken(token string) (int64, error)
}
