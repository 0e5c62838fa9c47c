package api

// Common request/response schemas.
//
// Input schemas validate untrusted data through their validate tags; output
// schemas define the exact public shape returned to clients and never carry
// sensitive fields such as password hashes.

// CreateUserRequest defines the payload for the user creation endpoint.
// Password has no minimum length; max=72 is the bcrypt input limit, which
// would otherwise surface as a hashing error.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,max=200"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// GetUserQuery selects a single user by username or email.
type GetUserQuery struct {
	Username string `json:"username" validate:"required_without=Email"`
	Email    string `json:"email"    validate:"omitempty,email"`
}

// CreatedUser is the public projection of a user.
type CreatedUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserListResponse is the response for the user listing endpoint.
type UserListResponse struct {
	Users []CreatedUser `json:"users"`
}
