package store

import "errors"

var (
	// ErrInvalidCredentials deliberately does not distinguish a wrong
	// email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("an account with this email already exists")
)
