// Package common defines shared constants and sentinel errors used across
// the userdir client and bridge layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Lookup errors.
	ErrorNotFound = errors.New("not found")

	// Input errors.
	ErrValidation = errors.New("validation error")

	// Bridge auth errors (missing, malformed or expired token).
	ErrorUnauthorized = errors.New("unauthorized")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
)
