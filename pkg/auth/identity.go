// Package auth holds the identity side of sign-in: who the principal is and
// how long establishing that takes.
package auth

import (
	"context"

	"bible-study-be/internal/entity"
)

// IdentityProvider establishes the principal for a sign-in.
type IdentityProvider interface {
	Authenticate(ctx context.Context) (*entity.Session, error)
}

// SimulatedProvider always yields the fixed test principal.
type SimulatedProvider struct{}

var _ IdentityProvider = SimulatedProvider{}

func (SimulatedProvider) Authenticate(ctx context.Context) (*entity.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return TestSession(), nil
}

// TestSession returns a fresh copy of the simulated principal.
func TestSession() *entity.Session {
	displayName := "Usuario de Prueba"
	email := "test@example.com"
	photoURL := "https://i.pravatar.cc/150?u=testuser"
	return &entity.Session{
		Uid:         "12345abcde",
		DisplayName: &displayName,
		Email:       &email,
		PhotoURL:    &photoURL,
	}
}

// ProviderFunc adapts a function to IdentityProvider.
type ProviderFunc func(ctx context.Context) (*entity.Session, error)

func (f ProviderFunc) Authenticate(ctx context.Context) (*entity.Session, error) {
	return f(ctx)
}
