// Package common defines shared constants and sentinel errors used across
// the authd components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound       = errors.New("not found")
	ErrorDuplicateEmail = errors.New("email already registered")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Validation errors.
	ErrorMissingFields = errors.New("missing fields")
	ErrorWeakPassword  = errors.New("weak password")

	// Credential errors. Login failures collapse into this single value so
	// responses cannot reveal whether the email exists.
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// Token lifecycle errors.
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenRevoked   = errors.New("token revoked")
	ErrWrongTokenType = errors.New("wrong token type")

	// Password-reset errors.
	ErrUserNotFound = errors.New("user not found")
)
