package store

import (
	"context"

	"github.com/dmaus/userhub-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
// Implementations are bound to a DBTX at construction time, so the same
// code serves both direct connections and request-scoped sessions.
type UserStore interface {
	// Create saves a new user to the store.
	// The user must already carry a hashed password.
	// Returns ErrUserExists if the username or email is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// Exists reports whether a non-deleted user with the given username
	// or email is already present.
	Exists(ctx context.Context, username, email string) (bool, error)

	// GetByUsernameOrEmail retrieves a non-deleted user matching either
	// identifier. Returns ErrUserNotFound if no user matches.
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)

	// List returns all non-deleted users in creation order.
	List(ctx context.Context) ([]*domain.User, error)
}
