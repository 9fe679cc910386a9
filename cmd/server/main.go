// Package main is the entry point for the itinerary search service.
//
//	@title						ITNR Itinerary Search API
//	@version					1.0.0
//	@description				Resolves free-text cities, expands date windows and returns filtered, price-ordered flight itineraries from the Amadeus Self-Service API.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/itnr/itnr-api/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itnr/itnr-api/internal/adapter/cache"
	flighthttp "github.com/itnr/itnr-api/internal/adapter/http"
	"github.com/itnr/itnr-api/internal/adapter/http/middleware"
	"github.com/itnr/itnr-api/internal/adapter/provider/amadeus"
	"github.com/itnr/itnr-api/internal/config"
	"github.com/itnr/itnr-api/internal/domain"
	"github.com/itnr/itnr-api/internal/infrastructure/logger"
	"github.com/itnr/itnr-api/internal/infrastructure/ratelimit"
	"github.com/itnr/itnr-api/internal/usecase"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	// Import generated docs for swagger
	_ "github.com/itnr/itnr-api/docs"
)

const (
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger with config
	log := setupLogger(cfg)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("provider_host", cfg.Provider.BaseURL()).
		Bool("provider_configured", cfg.Provider.HasCredentials()).
		Msg("Configuration loaded")

	if !cfg.Provider.HasCredentials() {
		log.Warn().Msg("AMADEUS_CLIENT_ID/AMADEUS_CLIENT_SECRET not set, searches will return 503")
	}

	locationCache, closeCache := setupCache(cfg, log)
	defer closeCache()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Configure server timeouts from config
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log.Logger)

	setupRoutes(e, cfg, locationCache)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	gracefulShutdown(e, log)
}

// setupLogger builds the process logger and makes it the default for
// contexts that carry no request logger.
func setupLogger(cfg *config.Config) *logger.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logCfg := logger.DefaultConfig()
	if cfg.Logging.Level != "" {
		logCfg.Level = cfg.Logging.Level
	}
	if cfg.Logging.Format != "" {
		logCfg.Format = cfg.Logging.Format
	}

	log := logger.New(logCfg)
	zerolog.DefaultContextLogger = &log.Logger

	return log
}

// setupCache connects to Redis when REDIS_ADDR is set. A failed connection
// is logged and the service runs without the cache.
func setupCache(cfg *config.Config, log *logger.Logger) (domain.LocationCache, func()) {
	if !cfg.Cache.Enabled() {
		return cache.NewNoOpCache(), func() {}
	}

	rc, err := cache.NewRedisCache(cache.RedisConfig{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
		TTL:      cfg.Cache.LocationTTL,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Location cache unavailable, continuing without it")
		return cache.NewNoOpCache(), func() {}
	}

	log.Info().Str("addr", cfg.Cache.RedisAddr).Dur("ttl", cfg.Cache.LocationTTL).Msg("Location cache enabled")
	return rc, func() {
		if err := rc.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing location cache")
		}
	}
}

// setupRoutes wires the provider, the use case and the HTTP handler.
func setupRoutes(e *echo.Echo, cfg *config.Config, locationCache domain.LocationCache) {
	client := amadeus.NewClient(amadeus.Config{
		BaseURL:      cfg.Provider.BaseURL(),
		ClientID:     cfg.Provider.ClientID,
		ClientSecret: cfg.Provider.ClientSecret,
		Currency:     cfg.Provider.Currency,
		MaxResults:   cfg.Provider.MaxResults,
		CallTimeout:  cfg.Timeouts.ProviderCall,
		RetryBackoff: cfg.Timeouts.RetryBackoff,
		RateLimit: ratelimit.Config{
			RequestsPerSecond: cfg.Provider.RateLimitRPS,
			Burst:             cfg.Provider.RateLimitBurst,
		},
	})

	resolver := usecase.NewCityResolver(client, locationCache)

	flightUseCase := usecase.NewFlightSearchUseCase(client, resolver, &usecase.Config{
		RequestTimeout:   cfg.Timeouts.Request,
		MaxConcurrency:   cfg.Search.MaxConcurrency,
		PeriodCandidates: cfg.Search.PeriodCandidates,
		PeriodStepDays:   cfg.Search.PeriodStepDays,
		Currency:         cfg.Provider.Currency,
	})

	health := flighthttp.HealthStatus{ProviderConfigured: client.Configured()}
	if rc, ok := locationCache.(*cache.RedisCache); ok {
		health.Cache = rc
	}

	flightHandler := flighthttp.NewFlightHandler(flightUseCase, health)

	flighthttp.RegisterRoutes(e, flightHandler)
	flighthttp.RegisterSwagger(e)
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
