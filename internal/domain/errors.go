package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the search pipeline.
var (
	// ErrInvalidRequest is returned when the search request fails validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrCityNotFound is returned when a city name cannot be mapped to an IATA code.
	ErrCityNotFound = errors.New("city not found")

	// ErrProviderAuth is returned when the provider rejects our credentials.
	ErrProviderAuth = errors.New("provider authentication failed")

	// ErrProviderTimeout is returned when the provider does not answer in time.
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrProviderResponse is returned for unexpected provider statuses or payloads.
	ErrProviderResponse = errors.New("unexpected provider response")

	// ErrProviderNotConfigured is returned when provider credentials are missing.
	ErrProviderNotConfigured = errors.New("provider credentials not configured")
)

// Kind classifies an error for the HTTP boundary.
type Kind string

// Error kinds exposed to API clients.
const (
	KindValidation         Kind = "ValidationError"
	KindResolution         Kind = "ResolutionError"
	KindAuth               Kind = "AuthError"
	KindTimeout            Kind = "TimeoutError"
	KindProvider           Kind = "ProviderError"
	KindServiceUnavailable Kind = "ServiceUnavailable"
	KindInternal           Kind = "InternalError"
)

// KindOf returns the kind of err. Unknown errors are KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case IsInvalidRequest(err):
		return KindValidation
	case IsCityNotFound(err):
		return KindResolution
	case IsProviderAuth(err):
		return KindAuth
	case IsProviderTimeout(err), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, ErrProviderResponse):
		return KindProvider
	case errors.Is(err, ErrProviderNotConfigured):
		return KindServiceUnavailable
	default:
		return KindInternal
	}
}

// ProviderError wraps an error returned by the flight-data provider.
type ProviderError struct {
	// Provider is the provider name (e.g. "amadeus")
	Provider string

	// StatusCode is the upstream HTTP status, 0 when no response was received
	StatusCode int

	// Err is the underlying error
	Err error

	// Retryable indicates whether another attempt may succeed
	Retryable bool
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider %s (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a non-retryable provider error.
func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}

// NewRetryableProviderError creates a provider error that may be retried.
func NewRetryableProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err, Retryable: true}
}

// NewProviderTimeoutError creates a retryable timeout error for the provider.
func NewProviderTimeoutError(provider string) *ProviderError {
	return &ProviderError{Provider: provider, Err: ErrProviderTimeout, Retryable: true}
}

// NewProviderAuthError creates an auth failure. Auth failures are never retried.
func NewProviderAuthError(provider string, statusCode int, cause error) *ProviderError {
	err := ErrProviderAuth
	if cause != nil {
		err = fmt.Errorf("%w: %v", ErrProviderAuth, cause)
	}
	return &ProviderError{Provider: provider, StatusCode: statusCode, Err: err}
}

// NewProviderResponseError creates an error for an unexpected status or payload.
func NewProviderResponseError(provider string, statusCode int, detail string) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		StatusCode: statusCode,
		Err:        fmt.Errorf("%w: %s", ErrProviderResponse, detail),
	}
}

// AuthStatus returns the HTTP status to surface for an auth error: 403 when the
// provider said 403, 401 otherwise.
func AuthStatus(err error) int {
	var pe *ProviderError
	if errors.As(err, &pe) && pe.StatusCode == http.StatusForbidden {
		return http.StatusForbidden
	}
	return http.StatusUnauthorized
}

// ResolutionError is returned when a city cannot be resolved.
type ResolutionError struct {
	City string
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no airport found for city %q", e.City)
}

// Is reports ErrCityNotFound as a match.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrCityNotFound
}

// NewResolutionError creates a ResolutionError for the given city.
func NewResolutionError(city string) *ResolutionError {
	return &ResolutionError{City: city}
}

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is reports ErrInvalidRequest as a match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// WrapInvalidRequest formats a message wrapped with ErrInvalidRequest.
func WrapInvalidRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// IsInvalidRequest reports whether err is a validation failure.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsCityNotFound reports whether err is a resolution failure.
func IsCityNotFound(err error) bool {
	return errors.Is(err, ErrCityNotFound)
}

// IsProviderAuth reports whether err is a provider auth failure.
func IsProviderAuth(err error) bool {
	return errors.Is(err, ErrProviderAuth)
}

// IsProviderTimeout reports whether err is a provider timeout.
func IsProviderTimeout(err error) bool {
	return errors.Is(err, ErrProviderTimeout)
}

// IsRetryable reports whether err is a provider error marked retryable.
func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}
