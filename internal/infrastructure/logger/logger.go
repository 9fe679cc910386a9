// Package logger provides structured logging using zerolog.
// It supports JSON and console output formats with configurable log levels,
// and carries request-scoped loggers through context.Context.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds the logger configuration options.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string

	// Format is the output format (json, console)
	Format string

	// EnableCaller adds caller information to log entries
	EnableCaller bool

	// ServiceName is the name of the service for log context
	ServiceName string
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "itnr-api",
	}
}

// Logger is the process logger built from Config.
type Logger struct {
	zerolog.Logger
}

// New creates a new Logger writing to stdout.
func New(cfg Config) *Logger {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput creates a new Logger with a custom output writer.
func NewWithOutput(cfg Config, output io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var writer io.Writer = output
	if cfg.Format == "console" {
		writer = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	zctx := zerolog.New(writer).
		Level(level).
		With().
		Timestamp()
	if cfg.ServiceName != "" {
		zctx = zctx.Str("service", cfg.ServiceName)
	}
	if cfg.EnableCaller {
		zctx = zctx.Caller()
	}

	return &Logger{Logger: zctx.Logger()}
}

// FromContext returns the logger stored in ctx by the request middleware.
// Without one it falls back to zerolog.DefaultContextLogger, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
