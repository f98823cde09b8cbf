package usecase

import "errors"

var (
	// ErrAuthRequired is returned when an operation needs a signed-in user.
	ErrAuthRequired = errors.New("authentication required")

	// ErrNotFound is returned when the addressed profile, whisky or post
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrBadCursor is returned for pagination tokens that cannot be decoded.
	ErrBadCursor = errors.New("invalid pagination cursor")

	// ErrInvalidInput is returned for request values that fail validation.
	ErrInvalidInput = errors.New("invalid input")
)
