package settings

import "errors"

var (
	ErrSettingsNotFound  = errors.New("settings not found")
	ErrUnknownDepartment = errors.New("department is not configured")
	ErrCacheMiss         = errors.New("settings not cached")
)
