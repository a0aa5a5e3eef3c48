package apperrors

import "errors"

// Sentinel errors shared across services and mapped to HTTP statuses by the
// error middleware.
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotUploaded   = errors.New("no file uploaded")

	// ErrNoPlace is returned when a user without a registered place tries to
	// create an event.
	ErrNoPlace = errors.New("user has no place")
)
