package ports

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
)

// ErrUserNotAuthenticated is returned when the caller has no valid identity.
var ErrUserNotAuthenticated = errors.New("User not authenticated")

// Identity is the authenticated caller.
type Identity struct {
	ID   kernel.UUID
	Role string
}

// IdentityProvider resolves the caller of the current request.
type IdentityProvider interface {
	// CurrentUser returns ErrUserNotAuthenticated when ctx carries no identity.
	CurrentUser(ctx context.Context) (Identity, error)
}
