package user

import (
	"context"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/domain"
)

// CreateInput carries the fields needed to insert a user row.
type CreateInput struct {
	Name         string
	Email        string
	PasswordHash string
	Role         string
	IsAnonymous  bool
}

// Repository persists and fetches users.
type Repository interface {
	Create(ctx context.Context, in CreateInput) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// SetGuestIdentity mutates an anonymous user in place with a
	// phone-derived pseudo-email and display name. The user stays
	// anonymous; the same row keeps its cart and history.
	SetGuestIdentity(ctx context.Context, id, name, email string) (*domain.User, error)
	// Promote upgrades an anonymous user into a registered account in
	// place, setting credentials and clearing the anonymous flag.
	Promote(ctx context.Context, id, name, email, passwordHash string) (*domain.User, error)
}
