// Package common defines shared constants and sentinel errors used across
// the campdir server. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound   = errors.New("not found")
	ErrorEmailTaken = errors.New("email already registered")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("invalid credentials")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid, expired or malformed token). The reset-token
	// error is deliberately a single value: not-found and expired must be
	// indistinguishable to the caller.
	ErrorInvalidToken      = errors.New("invalid token")
	ErrorInvalidResetToken = errors.New("invalid reset token")

	// Dependency errors.
	ErrorMailNotSent = errors.New("email could not be sent")
)
