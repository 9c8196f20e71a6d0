package domain

import "errors"

// Sentinel errors shared across services. Controllers map these to HTTP statuses.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidState is returned when an entity exists but the requested
	// transition is not valid for its current status.
	ErrInvalidState = errors.New("invalid state")
)
