package services

import "errors"

// Sentinel errors for the expected failure modes. Handlers translate these
// into flash messages; anything else is a store outage and surfaces as a 500.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrPasswordMismatch   = errors.New("password mismatch")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
)
