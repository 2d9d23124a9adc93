package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Redis    RedisConfig
	Cron     CronConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	FrontendURL        string
	CORSAllowedOrigins []string
}

// RedisConfig is optional: an empty Addr disables the settings cache.
type RedisConfig struct {
	Addr             string
	Password         string
	DB               int
	SettingsCacheTTL time.Duration
}

type CronConfig struct {
	TokenPurgeInterval time.Duration
	TokenRetention     time.Duration
}

// Load reads the process environment. A .env file is loaded when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{}

	database, err := loadDatabase()
	if err != nil {
		return nil, err
	}
	config.Database = database

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("SETTINGS_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SETTINGS_CACHE_TTL: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:             getEnv("REDIS_ADDR", ""),
		Password:         getEnv("REDIS_PASSWORD", ""),
		DB:               redisDB,
		SettingsCacheTTL: cacheTTL,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	frontendURL := getEnv("APP_FRONTEND_URL", "http://localhost:3000")
	origins := getEnvSlice("CORS_ALLOWED_ORIGINS")
	if len(origins) == 0 {
		origins = []string{frontendURL}
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		FrontendURL:        frontendURL,
		CORSAllowedOrigins: origins,
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Background jobs
	purgeInterval, err := time.ParseDuration(getEnv("TOKEN_PURGE_INTERVAL", "6h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_PURGE_INTERVAL: %w", err)
	}
	retention, err := time.ParseDuration(getEnv("TOKEN_RETENTION", "72h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_RETENTION: %w", err)
	}
	config.Cron = CronConfig{
		TokenPurgeInterval: purgeInterval,
		TokenRetention:     retention,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	for name, value := range map[string]string{
		"JWT_ACCESS_EXPIRATION_TIME":  c.JWT.AccessExpiration,
		"JWT_REFRESH_EXPIRATION_TIME": c.JWT.RefreshExpiration,
	} {
		if d, err := time.ParseDuration(value); err != nil || d <= 0 {
			return fmt.Errorf("%s must be a positive duration, got %q", name, value)
		}
	}
	if c.Cron.TokenPurgeInterval <= 0 {
		return fmt.Errorf("TOKEN_PURGE_INTERVAL must be positive")
	}
	return nil
}

// LoadDatabase reads only the database settings, for tools that do not serve HTTP.
func LoadDatabase() (DatabaseConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return DatabaseConfig{}, fmt.Errorf("error loading .env file: %w", err)
	}
	return loadDatabase()
}

func loadDatabase() (DatabaseConfig, error) {
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return DatabaseConfig{}, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "interntrack"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}, nil
}

// URL returns the PostgreSQL connection string
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Name,
		d.SSLMode,
	)
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return c.Database.URL()
}

// SlogLevel maps LOG_LEVEL to a slog level; unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return nil
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
