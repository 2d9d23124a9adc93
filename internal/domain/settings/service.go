package settings

import "context"

type SettingsService interface {
	// Current resolves the settings value for the request; other services receive it from here.
	Current(ctx context.Context) (Settings, error)
	Get(ctx context.Context) (SettingsResponse, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
	AddValues(ctx context.Context, req AddValuesRequest) (SettingsResponse, error)
	Delete(ctx context.Context) error
}
