// Package common defines sentinel errors shared across the storefront
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Registry/repository-level errors.
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already in use")

	// Validation errors (negative amounts, identical old/new password).
	ErrInvalidArgument = errors.New("invalid argument")

	// Auth errors. Login does not distinguish an unknown username from a
	// wrong password; both surface as ErrAuthenticationFailed.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// Purchase errors.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Persistence-port errors. Non-fatal: the in-memory mutation that
	// triggered the save stays committed.
	ErrPersistenceFailure = errors.New("persistence failure")
)
