package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmaus/userhub-api/internal/domain"
	"github.com/dmaus/userhub-api/internal/platform/logger"
	"github.com/dmaus/userhub-api/internal/store"
)

// UserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type UserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized
// and managed by the caller. If logger is nil, a default logger will be used.
func NewUserStore(db store.DBTX, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &UserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create
// The user must already carry a hashed password; plaintext never reaches
// this layer. The unique indexes on username and email act as a backstop
// for the service-level existence check, so a concurrent duplicate insert
// surfaces as store.ErrUserExists instead of a second row.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	query := `
		INSERT INTO users (id, username, email, hashed_password, created_at, updated_at, deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Username,
		user.Email,
		user.HashedPassword,
		user.CreatedAt,
		user.UpdatedAt,
		user.Deleted,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("unique violation during user creation",
				slog.String("username", user.Username),
				slog.String("email", user.Email))
			return store.ErrUserExists
		}

		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return store.NewStoreError("user", "create", "insert failed", MapError(err))
	}

	log.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))
	return nil
}

// Exists implements store.UserStore.Exists
// It reports whether a non-deleted user with the given username or email
// is already present.
func (s *UserStore) Exists(ctx context.Context, username, email string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE (username = $1 OR email = $2) AND NOT deleted
		)
	`

	var exists bool
	err := s.db.QueryRowContext(ctx, query, username, email).Scan(&exists)
	if err != nil {
		log.Error("failed to check user existence",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return false, store.NewStoreError("user", "exists", "query failed", MapError(err))
	}

	return exists, nil
}

// GetByUsernameOrEmail implements store.UserStore.GetByUsernameOrEmail
// Returns store.ErrUserNotFound if no non-deleted user matches.
func (s *UserStore) GetByUsernameOrEmail(
	ctx context.Context,
	username, email string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, username, email, hashed_password, created_at, updated_at, deleted
		FROM users
		WHERE (username = $1 OR email = $2) AND NOT deleted
	`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, username, email).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Deleted,
	)

	if err != nil {
		if errors.Is(MapError(err), store.ErrNotFound) {
			log.Debug("user not found",
				slog.String("username", username),
				slog.String("email", email))
			return nil, store.ErrUserNotFound
		}

		log.Error("failed to get user",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, store.NewStoreError("user", "get", "query failed", MapError(err))
	}

	return &user, nil
}

// List implements store.UserStore.List
// It returns all non-deleted users in creation order.
func (s *UserStore) List(ctx context.Context) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, username, email, hashed_password, created_at, updated_at, deleted
		FROM users
		WHERE NOT deleted
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, store.NewStoreError("user", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	users := make([]*domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.HashedPassword,
			&user.CreatedAt,
			&user.UpdatedAt,
			&user.Deleted,
		); err != nil {
			log.Error("failed to scan user row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("user", "list", "scan failed", MapError(err))
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("user", "list", "row iteration failed", MapError(err))
	}

	return users, nil
}
