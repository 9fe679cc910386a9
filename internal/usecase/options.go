// Package usecase contains the business logic for itinerary search.
// It resolves cities, expands date windows, fans out provider calls over the
// date pairs and shapes the merged offers.
package usecase

import "time"

// Default timeout and fan-out values.
const (
	DefaultRequestTimeout = 25 * time.Second
	DefaultMaxConcurrency = 3
	MaxConcurrencyLimit   = 10
)

// Config contains configuration options for the use case.
type Config struct {
	// RequestTimeout bounds a whole search, fan-out included
	RequestTimeout time.Duration

	// MaxConcurrency is the number of date pairs queried at once
	MaxConcurrency int

	// PeriodCandidates and PeriodStepDays drive period expansion
	PeriodCandidates int
	PeriodStepDays   int

	// Currency is reported in meta
	Currency string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		RequestTimeout:   DefaultRequestTimeout,
		MaxConcurrency:   DefaultMaxConcurrency,
		PeriodCandidates: DefaultPeriodCandidates,
		PeriodStepDays:   DefaultPeriodStepDays,
		Currency:         "EUR",
	}
}

// merge fills unset fields of c from DefaultConfig.
func (c *Config) merge() Config {
	cfg := DefaultConfig()
	if c == nil {
		return cfg
	}
	if c.RequestTimeout > 0 {
		cfg.RequestTimeout = c.RequestTimeout
	}
	if c.MaxConcurrency > 0 {
		cfg.MaxConcurrency = min(c.MaxConcurrency, MaxConcurrencyLimit)
	}
	if c.PeriodCandidates > 0 {
		cfg.PeriodCandidates = c.PeriodCandidates
	}
	if c.PeriodStepDays > 0 {
		cfg.PeriodStepDays = c.PeriodStepDays
	}
	if c.Currency != "" {
		cfg.Currency = c.Currency
	}
	return cfg
}
