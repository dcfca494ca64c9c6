package auth

import "errors"

// Token decoding failures. Each maps to a distinct client-facing message.
var (
	// ErrInvalidToken indicates the token is structurally invalid, is signed
	// with another key or algorithm, or carries claims that cannot be trusted.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates a correctly signed token past its expiry.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates no token was presented.
	ErrMissingToken = errors.New("authentication token is missing")
)

// Authentication and authorization failures.
var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateIdentity is returned when registering an email that is taken.
	ErrDuplicateIdentity = errors.New("identity already registered")

	// ErrForbidden indicates an authenticated principal lacks the required role
	// or ownership.
	ErrForbidden = errors.New("insufficient permissions")
)
