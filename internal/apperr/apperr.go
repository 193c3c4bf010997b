// Package apperr defines the error kinds handlers map to HTTP statuses.
package apperr

import "errors"

var (
	// ErrValidation marks a rejected request (missing field, bad format).
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a reference to a missing account, category or
	// transaction.
	ErrNotFound = errors.New("not found")
	// ErrParse marks a malformed statement row; it aborts the whole import.
	ErrParse = errors.New("parse error")
	// ErrConflict marks a lost status transition race (already posted).
	ErrConflict = errors.New("conflict")
)
