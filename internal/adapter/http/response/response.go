// Package response provides standardized HTTP response builders for the itinerary search API.
// It centralizes response formatting to ensure consistency across all endpoints.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	// Kind is the machine-readable error class (ValidationError, AuthError...)
	Kind string `json:"kind" example:"ValidationError"`

	// Message is a human-readable error message
	Message string `json:"message" example:"Request validation failed"`

	// Details carries field errors or context such as the unresolved city
	Details map[string]any `json:"details,omitempty"`
}

// Error messages used in API responses.
const (
	MsgInvalidRequestBody = "Failed to parse request body"
	MsgValidationFailed   = "Request validation failed"
	MsgServiceUnavailable = "Flight provider credentials are not configured"
	MsgTimeout            = "Flight provider did not answer in time"
	MsgRequestCancelled   = "Request was cancelled"
	MsgProviderError      = "Flight provider returned an unexpected response"
	MsgAuthFailed         = "Flight provider rejected the service credentials"
	MsgInternalError      = "An unexpected error occurred"
)

// Error writes an ErrorDetail with the given status.
func Error(c echo.Context, status int, kind, message string, details map[string]any) error {
	return c.JSON(status, &ErrorDetail{
		Kind:    kind,
		Message: message,
		Details: details,
	})
}

// OK writes a 200 OK response with the given data.
func OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, data)
}
