package auth

import (
	"errors"
	"time"
)

var (
	// ErrMissingField indicates a required request field was absent.
	ErrMissingField = errors.New("required field missing")
	// ErrInvalidCredentials indicates a login failure. Deliberately identical
	// for an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists signals a duplicate email registration.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound indicates the user behind a valid token no longer exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrTokenExpired means the token was well-formed but its expiry passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid means a supplied token failed signature or shape checks.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrConfig indicates a missing or malformed runtime configuration value.
	ErrConfig = errors.New("configuration error")
	// ErrAuthenticationFailed is the catch-all for unexpected failures during
	// login; the underlying cause is logged, never surfaced.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrRegistrationFailed is the catch-all for unexpected failures during
	// registration.
	ErrRegistrationFailed = errors.New("registration failed")
)

// User models the authentication entity persisted in the users table.
// Password holds the stored hash and is excluded from serialization.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"-"`
}

// Credentials captures raw credential input for login.
type Credentials struct {
	Email    string
	Password string
}
