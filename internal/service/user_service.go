package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmaus/userhub-api/internal/domain"
	"github.com/dmaus/userhub-api/internal/httperr"
	"github.com/dmaus/userhub-api/internal/store"
)

// UserService implements the user business logic over a request-scoped
// session. It owns the commit: a successful Create leaves the session
// committed, every other outcome leaves it for the dispatch layer to
// discard.
type UserService struct {
	userStore store.UserStore
	session   store.Session
	hasher    PasswordHasher
	logger    *slog.Logger
}

// NewUserService creates a UserService bound to one request's session.
// The userStore must be constructed over the same session.
func NewUserService(
	userStore store.UserStore,
	session store.Session,
	hasher PasswordHasher,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		userStore: userStore,
		session:   session,
		hasher:    hasher,
		logger:    logger.With("component", "user_service"),
	}
}

// Exists reports whether a user with the given username or email is
// already registered.
func (s *UserService) Exists(ctx context.Context, username, email string) (bool, error) {
	return s.userStore.Exists(ctx, username, email)
}

// Create registers a new user: it checks for an existing username/email,
// hashes the password, persists the entity, and commits the session.
// Returns httperr.Forbidden when the user already exists. The existence
// check is a fast path only; the store's unique indexes catch the
// check-then-insert race and surface as the same Forbidden error.
func (s *UserService) Create(ctx context.Context, username, email, password string) (*domain.User, error) {
	exists, err := s.Exists(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return nil, httperr.Forbidden("this user already exists")
	}

	user, err := domain.NewUser(username, email)
	if err != nil {
		s.logger.Warn("rejected invalid user",
			"error", err,
			"username", username)
		return nil, httperr.New(err.Error(), 400)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUserExists) {
			// Lost the race against a concurrent create.
			return nil, httperr.Forbidden("this user already exists")
		}
		return nil, err
	}

	if err := s.session.Commit(); err != nil {
		s.logger.Error("failed to commit user creation",
			"error", err,
			"user_id", user.ID)
		return nil, store.NewStoreError("user", "create", "commit failed", err)
	}

	s.logger.Info("user created",
		"user_id", user.ID,
		"username", user.Username)

	return user, nil
}

// Get retrieves a user by username or email.
// Returns httperr.NotFound when no user matches.
func (s *UserService) Get(ctx context.Context, username, email string) (*domain.User, error) {
	user, err := s.userStore.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, httperr.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

// List returns all registered users.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userStore.List(ctx)
}
