package model

import "errors"

var (
	// ErrNotFound is returned when an entity does not exist, or exists but
	// is owned by another user. The two cases are deliberately
	// indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned on registration with an already used
	// (case-insensitively equal) email.
	ErrEmailTaken = errors.New("email already exists")

	// ErrInvalidCredentials covers unknown email, wrong password and
	// inactive account alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("validation error")

	// ErrWeakPassword is returned when a password fails the strength policy.
	ErrWeakPassword = errors.New("password is too weak")
)
