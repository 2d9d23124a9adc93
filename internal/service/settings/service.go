package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/settings"
)

// CacheRecorder counts settings cache lookups.
type CacheRecorder interface {
	SettingsCache(result string)
}

type SettingsServiceImpl struct {
	settings.SettingsRepository
	cache    settings.SettingsCache
	recorder CacheRecorder
}

// NewSettingsService builds the settings service. cache may be nil, in which case every read goes
// to the repository.
func NewSettingsService(repo settings.SettingsRepository, cache settings.SettingsCache, recorder CacheRecorder) settings.SettingsService {
	return &SettingsServiceImpl{
		SettingsRepository: repo,
		cache:              cache,
		recorder:           recorder,
	}
}

// Current implements settings.SettingsService. Cache failures degrade to a repository read.
func (s *SettingsServiceImpl) Current(ctx context.Context) (settings.Settings, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		switch {
		case err == nil:
			s.record("hit")
			return cached, nil
		case errors.Is(err, settings.ErrCacheMiss):
			s.record("miss")
		default:
			s.record("error")
			slog.Warn("settings cache read failed", "error", err)
		}
	}

	current, err := s.SettingsRepository.GetOrCreateDefault(ctx)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, current); err != nil {
			slog.Warn("settings cache write failed", "error", err)
		}
	}
	return current, nil
}

// Get implements settings.SettingsService.
func (s *SettingsServiceImpl) Get(ctx context.Context) (settings.SettingsResponse, error) {
	if _, err := access.PrincipalFromContext(ctx); err != nil {
		return settings.SettingsResponse{}, err
	}

	current, err := s.Current(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	return settings.ToResponse(current), nil
}

// Update implements settings.SettingsService.
func (s *SettingsServiceImpl) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return settings.SettingsResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	current, err := s.SettingsRepository.GetOrCreateDefault(ctx)
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to load settings: %w", err)
	}

	return s.save(ctx, req.Apply(current))
}

// AddValues implements settings.SettingsService.
func (s *SettingsServiceImpl) AddValues(ctx context.Context, req settings.AddValuesRequest) (settings.SettingsResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return settings.SettingsResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	current, err := s.SettingsRepository.GetOrCreateDefault(ctx)
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to load settings: %w", err)
	}

	next, err := req.Apply(current)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	return s.save(ctx, next)
}

// Delete implements settings.SettingsService.
func (s *SettingsServiceImpl) Delete(ctx context.Context) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	if err := s.SettingsRepository.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete settings: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *SettingsServiceImpl) save(ctx context.Context, next settings.Settings) (settings.SettingsResponse, error) {
	updated, err := s.SettingsRepository.Update(ctx, next)
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to update settings: %w", err)
	}
	s.invalidate(ctx)
	return settings.ToResponse(updated), nil
}

func (s *SettingsServiceImpl) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		slog.Warn("settings cache invalidation failed", "error", err)
	}
}

func (s *SettingsServiceImpl) record(result string) {
	if s.recorder != nil {
		s.recorder.SettingsCache(result)
	}
}

func requireAdmin(ctx context.Context) error {
	p, err := access.PrincipalFromContext(ctx)
	if err != nil {
		return err
	}
	if !p.IsAdmin() {
		return fmt.Errorf("manage settings as %s: %w", p.Role, access.ErrForbidden)
	}
	return nil
}
