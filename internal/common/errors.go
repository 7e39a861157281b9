// Package common defines shared constants and sentinel errors used across
// Crewbase components. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation errors (malformed/missing input, detected locally).
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidParameters = errors.New("invalid parameters")

	// Auth errors. ErrUserNotFound and ErrInvalidCredentials stay distinct
	// internally; the HTTP layer collapses both into the same client-facing
	// response so account existence is not enumerable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")

	// Uniqueness violations detected during provisioning.
	ErrAlreadyExists = errors.New("already exists")

	// A storage batch the store reports as not applied. The cause is unknown
	// to the caller and the operation is not retried at this layer.
	ErrOperationFailed = errors.New("operation did not apply")

	// Generic flow control.
	ErrInternal = errors.New("internal error")
)

// AlreadyExistsError reports which attribute collided (account id, email,
// team name) while still matching errors.Is(err, ErrAlreadyExists).
type AlreadyExistsError struct {
	Field string
	Value string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Field, e.Value)
}

func (e *AlreadyExistsError) Unwrap() error { return ErrAlreadyExists }
