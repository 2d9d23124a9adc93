package settings

import "context"

type SettingsRepository interface {
	// GetOrCreateDefault returns the stored settings, inserting Default first when none exist.
	// Concurrent first reads all observe the same single row.
	GetOrCreateDefault(ctx context.Context) (Settings, error)
	Update(ctx context.Context, s Settings) (Settings, error)
	// Delete removes the stored settings; the next read recreates the default.
	Delete(ctx context.Context) error
}

// SettingsCache is a read-through cache in front of SettingsRepository.
// Get returns ErrCacheMiss when nothing is cached.
type SettingsCache interface {
	Get(ctx context.Context) (Settings, error)
	Set(ctx context.Context, s Settings) error
	Invalidate(ctx context.Context) error
}
