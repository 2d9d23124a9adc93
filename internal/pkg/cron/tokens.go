package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/auth"
)

// RevocationList holds revoked access tokens until they expire.
type RevocationList interface {
	PruneRevokedTokens(now time.Time) int
}

// TokenJobs keeps the refresh token table and the access token revocation list bounded.
type TokenJobs struct {
	tokenRepo   auth.RefreshTokenRepository
	revocations RevocationList
	retention   time.Duration
	now         func() time.Time
}

// NewTokenJobs purges refresh tokens once they have been expired or revoked for longer than retention,
// and drops revoked access tokens once they have expired.
func NewTokenJobs(tokenRepo auth.RefreshTokenRepository, revocations RevocationList, retention time.Duration) *TokenJobs {
	return &TokenJobs{
		tokenRepo:   tokenRepo,
		revocations: revocations,
		retention:   retention,
		now:         time.Now,
	}
}

func (j *TokenJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("purge_refresh_tokens", interval, j.PurgeRefreshTokens)
	scheduler.AddJob("prune_revoked_tokens", interval, j.PruneRevokedTokens)
}

func (j *TokenJobs) PurgeRefreshTokens(ctx context.Context) error {
	cutoff := j.now().Add(-j.retention).UTC()

	deleted, err := j.tokenRepo.DeleteExpiredRefreshTokens(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to purge refresh tokens: %w", err)
	}

	if deleted > 0 {
		slog.Info("Cron: purged refresh tokens", "deleted", deleted, "cutoff", cutoff)
	}
	return nil
}

func (j *TokenJobs) PruneRevokedTokens(_ context.Context) error {
	if pruned := j.revocations.PruneRevokedTokens(j.now()); pruned > 0 {
		slog.Info("Cron: pruned revoked access tokens", "pruned", pruned)
	}
	return nil
}
