package application

import "errors"

// Domain errors returned by the services. Handlers map each kind to a stable
// HTTP status; none of these are retried internally.
var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password at login, deliberately indistinguishable so that login
	// failures do not leak which emails are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")

	ErrSelfContact     = errors.New("cannot add yourself as a contact")
	ErrContactExists   = errors.New("contact already in your list")
	ErrContactNotFound = errors.New("contact not found in your list")
)
