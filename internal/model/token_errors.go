package model

import "errors"

var (
	// ErrTokenRevoked means the refresh token was already consumed by
	// rotation or logout; the state is terminal.
	ErrTokenRevoked = errors.New("refresh token revoked")
	// ErrTokenExpired means the ledger entry outlived its expiry.
	ErrTokenExpired = errors.New("refresh token expired")
	// ErrTokenInvalid covers bad signature, wrong type and unknown JTI.
	ErrTokenInvalid = errors.New("refresh token invalid")
	// ErrTokenMalformed means the presented string cannot be parsed at all.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrTokenMismatch means the presented token does not match the stored hash.
	ErrTokenMismatch = errors.New("refresh token mismatch")
)
