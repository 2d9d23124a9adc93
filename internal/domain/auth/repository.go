package auth

import (
	"context"
	"time"
)

// RefreshTokenRepository stores issued refresh tokens. Tokens are hashed at rest.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, session SessionTrackingRequest) error
	IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error)
	RevokeRefreshToken(ctx context.Context, token string) error
	// DeleteExpiredRefreshTokens removes tokens that expired or were revoked before cutoff.
	DeleteExpiredRefreshTokens(ctx context.Context, cutoff time.Time) (int64, error)
}
