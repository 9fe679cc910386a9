// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/itnr/itnr-api/internal/usecase"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Amadeus hosts per environment.
const (
	AmadeusTestHost       = "https://test.api.amadeus.com"
	AmadeusProductionHost = "https://api.amadeus.com"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Timeouts TimeoutConfig
	Provider ProviderConfig
	Search   SearchConfig
	Cache    CacheConfig
	Logging  LoggingConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"35s"`
}

// TimeoutConfig holds timeouts for the search pipeline.
type TimeoutConfig struct {
	// Request bounds a whole search, fan-out included
	Request time.Duration `env:"TIMEOUT_REQUEST" envDefault:"25s"`

	// ProviderCall bounds a single HTTP call to the provider
	ProviderCall time.Duration `env:"TIMEOUT_PROVIDER_CALL" envDefault:"8s"`

	// RetryBackoff is the wait before the single retry of a timed out call
	RetryBackoff time.Duration `env:"TIMEOUT_RETRY_BACKOFF" envDefault:"500ms"`
}

// ProviderConfig holds Amadeus credentials and call settings.
type ProviderConfig struct {
	Env            string  `env:"AMADEUS_ENV" envDefault:"test"`
	Host           string  `env:"AMADEUS_HOST"`
	ClientID       string  `env:"AMADEUS_CLIENT_ID"`
	ClientSecret   string  `env:"AMADEUS_CLIENT_SECRET"`
	Currency       string  `env:"DEFAULT_CURRENCY" envDefault:"EUR"`
	MaxResults     int     `env:"AMADEUS_MAX_RESULTS" envDefault:"50"`
	RateLimitRPS   float64 `env:"AMADEUS_RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int     `env:"AMADEUS_RATE_LIMIT_BURST" envDefault:"10"`
}

// BaseURL returns AMADEUS_HOST when set, else the host for AMADEUS_ENV.
func (p ProviderConfig) BaseURL() string {
	if p.Host != "" {
		return strings.TrimRight(p.Host, "/")
	}
	if p.Env == "production" {
		return AmadeusProductionHost
	}
	return AmadeusTestHost
}

// HasCredentials reports whether both client id and secret are set.
func (p ProviderConfig) HasCredentials() bool {
	return p.ClientID != "" && p.ClientSecret != ""
}

// SearchConfig holds fan-out and date window settings.
type SearchConfig struct {
	MaxConcurrency   int `env:"SEARCH_MAX_CONCURRENCY" envDefault:"3"`
	PeriodCandidates int `env:"SEARCH_PERIOD_CANDIDATES" envDefault:"3"`
	PeriodStepDays   int `env:"SEARCH_PERIOD_STEP_DAYS" envDefault:"3"`
}

// CacheConfig holds the optional Redis location cache settings.
// An empty RedisAddr disables the cache.
type CacheConfig struct {
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	LocationTTL   time.Duration `env:"CACHE_LOCATION_TTL" envDefault:"24h"`
}

// Enabled reports whether a Redis address is configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}

	if err := validateTimeouts(cfg); err != nil {
		return err
	}
	if err := validateProvider(cfg); err != nil {
		return err
	}
	if err := validateSearch(cfg.Search); err != nil {
		return err
	}

	if cfg.Cache.Enabled() && cfg.Cache.LocationTTL <= 0 {
		return fmt.Errorf("CACHE_LOCATION_TTL must be positive when REDIS_ADDR is set")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

func validateTimeouts(cfg *Config) error {
	t := cfg.Timeouts
	if t.Request <= 0 {
		return fmt.Errorf("TIMEOUT_REQUEST must be positive")
	}
	if t.ProviderCall <= 0 {
		return fmt.Errorf("TIMEOUT_PROVIDER_CALL must be positive")
	}
	if t.RetryBackoff < 0 {
		return fmt.Errorf("TIMEOUT_RETRY_BACKOFF must not be negative")
	}
	if t.ProviderCall >= t.Request {
		return fmt.Errorf("TIMEOUT_PROVIDER_CALL (%s) should be less than TIMEOUT_REQUEST (%s)",
			t.ProviderCall, t.Request)
	}
	if t.Request >= cfg.Server.WriteTimeout {
		return fmt.Errorf("TIMEOUT_REQUEST (%s) should be less than SERVER_WRITE_TIMEOUT (%s)",
			t.Request, cfg.Server.WriteTimeout)
	}
	return nil
}

func validateProvider(cfg *Config) error {
	p := cfg.Provider
	if p.Env != "test" && p.Env != "production" {
		return fmt.Errorf("AMADEUS_ENV must be one of: test, production; got %q", p.Env)
	}
	if cfg.IsProduction() && !p.HasCredentials() {
		return fmt.Errorf("AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET must be set when APP_ENV=production")
	}
	if len(p.Currency) != 3 {
		return fmt.Errorf("DEFAULT_CURRENCY must be a 3-letter ISO code, got %q", p.Currency)
	}
	if p.MaxResults < 1 || p.MaxResults > 250 {
		return fmt.Errorf("AMADEUS_MAX_RESULTS must be between 1 and 250, got %d", p.MaxResults)
	}
	if p.RateLimitRPS < 0 {
		return fmt.Errorf("AMADEUS_RATE_LIMIT_RPS must not be negative")
	}
	return nil
}

func validateSearch(s SearchConfig) error {
	if s.MaxConcurrency < 1 || s.MaxConcurrency > 10 {
		return fmt.Errorf("SEARCH_MAX_CONCURRENCY must be between 1 and 10, got %d", s.MaxConcurrency)
	}
	if s.PeriodCandidates < 1 || s.PeriodCandidates > usecase.MaxPeriodCandidates {
		return fmt.Errorf("SEARCH_PERIOD_CANDIDATES must be between 1 and %d, got %d", usecase.MaxPeriodCandidates, s.PeriodCandidates)
	}
	if s.PeriodStepDays < 1 {
		return fmt.Errorf("SEARCH_PERIOD_STEP_DAYS must be at least 1, got %d", s.PeriodStepDays)
	}
	return nil
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
