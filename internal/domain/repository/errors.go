package repository

import "errors"

var (
	// ErrNotFound is returned when the addressed row does not exist
	// (or is not owned by the given author for guarded writes).
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when another user already owns the email.
	ErrDuplicateEmail = errors.New("email already taken")
)
