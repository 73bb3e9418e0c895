package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RefreshTokenStore persists the refresh-token ledger. A row with a non-nil
// RevokedAt is blacklisted; Consume is the single-winner transition used by
// rotation.
type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) error
	GetByJTI(ctx context.Context, jti string) (RefreshToken, error)
	// Consume marks the token revoked if and only if it is not already;
	// returns ErrTokenRevoked when another call got there first.
	Consume(ctx context.Context, jti string) error
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
}

// RefreshToken is a ledger entry for one issued refresh token, keyed by the
// JTI embedded in the signed token.
type RefreshToken struct {
	ID             uuid.UUID
	JTI            string
	UserID         uuid.UUID
	TokenHash      []byte
	IssuedAt       time.Time
	ExpiresAt      time.Time
	RevokedAt      *time.Time
	RotatedFromJTI *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
