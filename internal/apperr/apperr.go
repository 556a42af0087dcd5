// Package apperr defines the error taxonomy shared by all services. Every
// error that may reach a client either is one of these sentinels or wraps
// one with a caller-facing message; anything else is treated as an internal
// failure and reported without detail.
package apperr

import "errors"

var (
	// ErrValidation covers missing or empty required fields. Raised
	// before any store access.
	ErrValidation = errors.New("validation failed")

	// ErrAuthentication means the identity header was absent.
	ErrAuthentication = errors.New("authentication required")

	// ErrAuthorization means a non-admin hit an admin-only operation.
	ErrAuthorization = errors.New("admin access required")

	// ErrConflict maps store uniqueness violations, e.g. a duplicate
	// username on registration.
	ErrConflict = errors.New("already exists")

	// ErrNotFound covers unmatched routes and rows requested by id.
	ErrNotFound = errors.New("not found")
)

// Error pairs a taxonomy sentinel with a message safe to show the caller.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

// Validation wraps ErrValidation with a caller-facing message.
func Validation(msg string) error {
	return &Error{Kind: ErrValidation, Msg: msg}
}

// Conflict wraps ErrConflict with a caller-facing message.
func Conflict(msg string) error {
	return &Error{Kind: ErrConflict, Msg: msg}
}
