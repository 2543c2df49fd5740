// Package apperr holds the sentinel errors shared by the engine and the API.
package apperr

import "errors"

var (
	// ErrInvalidInput marks a single malformed record or request: a negative
	// shelf life, a bad date, an unknown meal type. Engines drop the record
	// and carry on; handlers answer 400.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when a record does not exist for the caller.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a unique value is already taken.
	ErrConflict = errors.New("conflict")

	// ErrInvalidCredentials is returned by login for any credential mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
