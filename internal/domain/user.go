package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Field-level validation errors, all wrapping ErrValidation.
var (
	ErrEmptyUserID         = fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	ErrEmptyUsername       = fmt.Errorf("%w: username cannot be empty", ErrValidation)
	ErrUsernameTooLong     = fmt.Errorf("%w: username must be at most 200 characters long", ErrValidation)
	ErrEmptyEmail          = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrInvalidEmail        = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrEmptyHashedPassword = fmt.Errorf("%w: hashed password cannot be empty", ErrValidation)
)

// User represents a registered user of the application.
// HashedPassword is the only credential the system keeps; the plaintext
// password never leaves the service layer that hashes it.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Deleted        bool      `json:"-"`
}

// NewUser creates a new User with the given username and email.
// It generates a new UUID for the user ID and sets the creation/update
// timestamps. The caller is responsible for hashing the password and
// assigning HashedPassword before the user is stored.
func NewUser(username, email string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.validateIdentity(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data for persistence.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if err := u.validateIdentity(); err != nil {
		return err
	}

	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}

	return nil
}

// validateIdentity checks the identity fields that must be valid even
// before a password hash is assigned.
func (u *User) validateIdentity() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Username == "" {
		return ErrEmptyUsername
	}

	if len(u.Username) > 200 {
		return ErrUsernameTooLong
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	return nil
}

// validateEmailFormat performs basic validation of email format.
// Request schemas apply the stricter validator.v10 email rule before any
// user input reaches this code; this check is a last line of defense for
// users constructed programmatically.
func validateEmailFormat(email string) bool {
	atIndex := strings.Index(email, "@")
	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	domainPart := email[atIndex+1:]
	dotIndex := strings.Index(domainPart, ".")
	return dotIndex > 0 && dotIndex < len(domainPart)-1
}
