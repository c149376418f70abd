// Package common defines shared constants and sentinel errors used across
// the colis client and the development backend. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Auth errors.
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrNoSession        = errors.New("no session")
	ErrAlreadyExists    = errors.New("already exists")
	ErrInvalidLoginPair = errors.New("invalid email/password")
)
