package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/settings"
	goredis "github.com/redis/go-redis/v9"
)

const settingsKey = "interntrack:settings"

// cachedSettings is the JSON shape stored under settingsKey.
type cachedSettings struct {
	CompanyName  string                `json:"company_name"`
	WorkingHours settings.WorkingHours `json:"working_hours"`
	Departments  []string              `json:"departments"`
	Positions    map[string][]string   `json:"positions"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

type settingsCache struct {
	client goredis.Cmdable
	ttl    time.Duration
}

// NewSettingsCache stores settings in Redis for ttl. A zero ttl keeps entries until invalidated.
func NewSettingsCache(client goredis.Cmdable, ttl time.Duration) settings.SettingsCache {
	return &settingsCache{client: client, ttl: ttl}
}

// Get implements settings.SettingsCache.
func (c *settingsCache) Get(ctx context.Context) (settings.Settings, error) {
	raw, err := c.client.Get(ctx, settingsKey).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return settings.Settings{}, settings.ErrCacheMiss
		}
		return settings.Settings{}, fmt.Errorf("failed to read cached settings: %w", err)
	}
	return decodeSettings(raw)
}

// Set implements settings.SettingsCache.
func (c *settingsCache) Set(ctx context.Context, s settings.Settings) error {
	raw, err := encodeSettings(s)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, settingsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache settings: %w", err)
	}
	return nil
}

// Invalidate implements settings.SettingsCache.
func (c *settingsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, settingsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached settings: %w", err)
	}
	return nil
}

func encodeSettings(s settings.Settings) ([]byte, error) {
	raw, err := json.Marshal(cachedSettings{
		CompanyName:  s.CompanyName,
		WorkingHours: s.WorkingHours,
		Departments:  s.Departments,
		Positions:    s.Positions,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	return raw, nil
}

// decodeSettings treats a corrupt entry as a miss so the caller reloads from the database.
func decodeSettings(raw []byte) (settings.Settings, error) {
	var c cachedSettings
	if err := json.Unmarshal(raw, &c); err != nil {
		return settings.Settings{}, settings.ErrCacheMiss
	}
	return settings.Settings{
		CompanyName:  c.CompanyName,
		WorkingHours: c.WorkingHours,
		Departments:  c.Departments,
		Positions:    c.Positions,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}, nil
}
