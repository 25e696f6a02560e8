package service

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidSignupCode  = errors.New("invalid or expired signup code")
	ErrCodeAlreadyUsed    = errors.New("cannot delete used signup code")
	ErrNotFound           = errors.New("not found")
	ErrUsherNotFound      = errors.New("usher not found")
	ErrUshersUnavailable  = errors.New("some selected ushers are not available")

	// ErrCorruptPasswordHash means a stored credential is not in bcrypt
	// format. That is data corruption, not a user mistake; it is logged in
	// full and surfaces to the client as a generic server error.
	ErrCorruptPasswordHash = errors.New("stored password hash is malformed")
)
