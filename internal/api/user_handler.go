package api

import (
	"log/slog"
	"net/http"

	"github.com/dmaus/userhub-api/internal/dispatch"
	"github.com/dmaus/userhub-api/internal/service"
	"github.com/dmaus/userhub-api/internal/store"
)

// UserStoreFactory builds a UserStore over the request's session.
// Production wiring supplies the Postgres implementation; tests inject
// in-memory fakes.
type UserStoreFactory func(db store.DBTX, logger *slog.Logger) store.UserStore

// UserHandler handles user-related API requests.
type UserHandler struct {
	stores UserStoreFactory
	hasher service.PasswordHasher
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(stores UserStoreFactory, hasher service.PasswordHasher, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		stores: stores,
		hasher: hasher,
		logger: logger,
	}
}

// userService builds the service for one request, bound to its session.
func (h *UserHandler) userService(c *dispatch.Context) *service.UserService {
	return service.NewUserService(h.stores(c.Session, c.Logger), c.Session, h.hasher, c.Logger)
}

// Create handles POST /v1/user/create.
func (h *UserHandler) Create(r *http.Request, c *dispatch.Context) (dispatch.Response, error) {
	req := c.Body.(*CreateUserRequest)

	user, err := h.userService(c).Create(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return dispatch.Response{}, err
	}

	return dispatch.Item(CreatedUser{
		Username: user.Username,
		Email:    user.Email,
	}), nil
}

// Get handles GET /v1/user/get.
func (h *UserHandler) Get(r *http.Request, c *dispatch.Context) (dispatch.Response, error) {
	query := c.Query.(*GetUserQuery)

	user, err := h.userService(c).Get(r.Context(), query.Username, query.Email)
	if err != nil {
		return dispatch.Response{}, err
	}

	return dispatch.Item(CreatedUser{
		Username: user.Username,
		Email:    user.Email,
	}), nil
}

// GetAll handles GET /v1/user/get-all.
func (h *UserHandler) GetAll(r *http.Request, c *dispatch.Context) (dispatch.Response, error) {
	users, err := h.userService(c).List(r.Context())
	if err != nil {
		return dispatch.Response{}, err
	}

	// Initialize the slice so an empty listing serializes as [] and not null.
	response := UserListResponse{Users: make([]CreatedUser, 0, len(users))}
	for _, user := range users {
		response.Users = append(response.Users, CreatedUser{
			Username: user.Username,
			Email:    user.Email,
		})
	}

	return dispatch.Item(response), nil
}
