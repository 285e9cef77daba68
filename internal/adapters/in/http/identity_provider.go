package http

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/auth"
)

// ContextIdentityProvider implements ports.IdentityProvider on the principal that
// the Authenticate middleware stores in the request context.
type ContextIdentityProvider struct{}

// NewContextIdentityProvider creates the provider.
func NewContextIdentityProvider() ContextIdentityProvider {
	return ContextIdentityProvider{}
}

// CurrentUser returns ports.ErrUserNotAuthenticated when ctx has no principal or
// its subject is not a user id.
func (ContextIdentityProvider) CurrentUser(ctx context.Context) (ports.Identity, error) {
	p, ok := auth.FromContext(ctx)
	if !ok {
		return ports.Identity{}, ports.ErrUserNotAuthenticated
	}

	id, err := kernel.UUIDFromString(p.Subject)
	if err != nil {
		return ports.Identity{}, ports.ErrUserNotAuthenticated
	}

	return ports.Identity{ID: id, Role: p.Role}, nil
}
