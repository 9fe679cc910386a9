// Package amadeus implements the flight and location providers on top of the
// Amadeus self-service APIs.
package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/itnr/itnr-api/internal/domain"
	"github.com/itnr/itnr-api/internal/infrastructure/logger"
	"github.com/itnr/itnr-api/internal/infrastructure/ratelimit"
	"github.com/itnr/itnr-api/internal/infrastructure/retry"
	"github.com/itnr/itnr-api/internal/infrastructure/timeutil"
)

// ProviderName is the unique identifier for the Amadeus provider.
const ProviderName = "amadeus"

// Defaults for unset Config fields.
const (
	DefaultCallTimeout  = 8 * time.Second
	DefaultRetryBackoff = 500 * time.Millisecond
	DefaultMaxResults   = 50
	DefaultCurrency     = "EUR"

	// maxErrorBody bounds how much of an error body ends up in messages
	maxErrorBody = 300
)

// Rate limiter keys, one bucket per endpoint.
const (
	endpointOffers    = "flight-offers"
	endpointLocations = "locations"
)

// Config holds the client settings.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string

	// Currency is sent as currencyCode on offer searches
	Currency string

	// MaxResults is sent as max on offer searches
	MaxResults int

	// CallTimeout bounds each HTTP exchange, token fetch included
	CallTimeout time.Duration

	// RetryBackoff is the wait before retrying a timed out call
	RetryBackoff time.Duration

	RateLimit ratelimit.Config

	// HTTPClient defaults to a client without global timeout; calls are
	// bounded by CallTimeout through their context
	HTTPClient *http.Client

	// Clock drives token expiry
	Clock timeutil.Clock
}

// Client talks to the Amadeus APIs. It implements domain.FlightProvider and
// domain.LocationProvider and is safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
	tokens     *tokenCache
	limiter    *ratelimit.Limiter
	retry      retry.Config
}

// NewClient creates a Client. Missing credentials are not an error here:
// every call then fails with domain.ErrProviderNotConfigured.
func NewClient(cfg Config) *Client {
	if cfg.Currency == "" {
		cfg.Currency = DefaultCurrency
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = DefaultCallTimeout
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = DefaultRetryBackoff
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.Clock == nil {
		cfg.Clock = timeutil.NewRealClock()
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		cfg:        cfg,
		httpClient: cfg.HTTPClient,
		tokens:     newTokenCache(cfg.BaseURL, cfg.ClientID, cfg.ClientSecret, cfg.HTTPClient, cfg.Clock),
		limiter:    ratelimit.New(cfg.RateLimit),
		retry: retry.OnceConfig.
			WithInitialDelay(cfg.RetryBackoff).
			WithRetryIf(domain.IsRetryable),
	}
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return ProviderName
}

// Configured reports whether credentials are set.
func (c *Client) Configured() bool {
	return c.cfg.ClientID != "" && c.cfg.ClientSecret != ""
}

// getJSON performs an authenticated GET and decodes the body into out.
// A retryable failure is retried once; everything else fails immediately.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	if !c.Configured() {
		return domain.NewProviderError(ProviderName, domain.ErrProviderNotConfigured)
	}

	log := logger.FromContext(ctx)
	policy := c.retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		log.Warn().
			Err(err).
			Str("provider", ProviderName).
			Str("endpoint", endpoint).
			Int("attempt", attempt).
			Dur("backoff", delay).
			Msg("provider call timed out, retrying")
	})

	start := time.Now()
	err := retry.Do(ctx, func() error {
		return c.attempt(ctx, endpoint, path, query, out)
	}, policy)

	event := log.Debug()
	if err != nil {
		event = log.Warn().Err(err)
	}
	event.
		Str("provider", ProviderName).
		Str("endpoint", endpoint).
		Dur("duration", time.Since(start)).
		Msg("provider call finished")

	return err
}

// attempt is one bounded exchange: rate limit, token, request, decode.
func (c *Client) attempt(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	callCtx, cancel := context.WithTimeout(ctx, c.cfg.CallTimeout)
	defer cancel()

	if err := c.limiter.Wait(callCtx, endpoint); err != nil {
		// The limiter fails early when the wait would outlast the deadline
		return c.transportError(ctx, fmt.Errorf("%w: %v", context.DeadlineExceeded, err))
	}

	token, err := c.tokens.Get(callCtx)
	if err != nil {
		return c.transportError(ctx, err)
	}

	reqURL := c.cfg.BaseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.amadeus+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportError(ctx, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// The token may have been revoked before its expiry
		c.tokens.Invalidate()
		return domain.NewProviderAuthError(ProviderName, resp.StatusCode, errors.New(errorDetail(body)))
	case resp.StatusCode == http.StatusForbidden:
		return domain.NewProviderAuthError(ProviderName, resp.StatusCode, errors.New(errorDetail(body)))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return domain.NewProviderResponseError(ProviderName, resp.StatusCode, errorDetail(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return domain.NewProviderResponseError(ProviderName, resp.StatusCode, "decode body: "+err.Error())
	}
	return nil
}

// transportError classifies a failure that produced no HTTP response.
//
// If the caller's context is done its error is returned unchanged, so the
// retry loop stops. A network failure or an expired per-call deadline
// becomes a retryable timeout. Provider errors pass through.
func (c *Client) transportError(parent context.Context, err error) error {
	var pe *domain.ProviderError
	if errors.As(err, &pe) {
		return err
	}
	if parent.Err() != nil {
		return fmt.Errorf("%s call aborted: %w", ProviderName, parent.Err())
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &netErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return domain.NewRetryableProviderError(ProviderName, fmt.Errorf("%w: %v", domain.ErrProviderTimeout, err))
	}
	return domain.NewProviderError(ProviderName, err)
}

// apiErrors is the error envelope of the Amadeus APIs.
type apiErrors struct {
	Errors []struct {
		Status int    `json:"status"`
		Code   int    `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
	// Token endpoint errors use the OAuth2 shape
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// errorDetail extracts a short message from an error body.
func errorDetail(body []byte) string {
	var env apiErrors
	if err := json.Unmarshal(body, &env); err == nil {
		if len(env.Errors) > 0 {
			e := env.Errors[0]
			if e.Detail != "" {
				return fmt.Sprintf("%s: %s", e.Title, e.Detail)
			}
			if e.Title != "" {
				return e.Title
			}
		}
		if env.Error != "" {
			if env.ErrorDescription != "" {
				return env.Error + ": " + env.ErrorDescription
			}
			return env.Error
		}
	}

	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	if s == "" {
		return "empty body"
	}
	return s
}

// Compile-time interface checks.
var (
	_ domain.FlightProvider   = (*Client)(nil)
	_ domain.LocationProvider = (*Client)(nil)
)
