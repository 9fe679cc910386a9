package response

import (
	"net/http"

	"github.com/itnr/itnr-api/internal/domain"
	"github.com/labstack/echo/v4"
)

// InvalidRequestBody writes a 400 Bad Request response for malformed request bodies.
func InvalidRequestBody(c echo.Context) error {
	return Error(c, http.StatusBadRequest, string(domain.KindValidation), MsgInvalidRequestBody, nil)
}

// ValidationError writes a 400 Bad Request response with field-level details.
func ValidationError(c echo.Context, fields map[string]string) error {
	details := make(map[string]any, len(fields))
	for k, v := range fields {
		details[k] = v
	}
	return Error(c, http.StatusBadRequest, string(domain.KindValidation), MsgValidationFailed, details)
}

// ValidationErrorWithMessage writes a 400 Bad Request response with a custom message.
func ValidationErrorWithMessage(c echo.Context, message string) error {
	return Error(c, http.StatusBadRequest, string(domain.KindValidation), message, nil)
}

// ResolutionError writes a 400 Bad Request response for a city that could not be resolved.
func ResolutionError(c echo.Context, message, city string) error {
	var details map[string]any
	if city != "" {
		details = map[string]any{"city": city}
	}
	return Error(c, http.StatusBadRequest, string(domain.KindResolution), message, details)
}

// AuthError writes a 401 or 403 response mirroring the provider status.
func AuthError(c echo.Context, status int) error {
	if status != http.StatusForbidden {
		status = http.StatusUnauthorized
	}
	return Error(c, status, string(domain.KindAuth), MsgAuthFailed, nil)
}

// BadGateway writes a 502 Bad Gateway response for unexpected provider answers.
func BadGateway(c echo.Context, upstreamStatus int) error {
	var details map[string]any
	if upstreamStatus > 0 {
		details = map[string]any{"upstreamStatus": upstreamStatus}
	}
	return Error(c, http.StatusBadGateway, string(domain.KindProvider), MsgProviderError, details)
}

// ServiceUnavailable writes a 503 Service Unavailable response.
func ServiceUnavailable(c echo.Context) error {
	return Error(c, http.StatusServiceUnavailable, string(domain.KindServiceUnavailable), MsgServiceUnavailable, nil)
}

// GatewayTimeout writes a 504 Gateway Timeout response.
func GatewayTimeout(c echo.Context) error {
	return Error(c, http.StatusGatewayTimeout, string(domain.KindTimeout), MsgTimeout, nil)
}

// RequestCancelled writes a 504 Gateway Timeout response for cancelled requests.
func RequestCancelled(c echo.Context) error {
	return Error(c, http.StatusGatewayTimeout, string(domain.KindTimeout), MsgRequestCancelled, nil)
}

// InternalServerError writes a 500 Internal Server Error response.
func InternalServerError(c echo.Context) error {
	return Error(c, http.StatusInternalServerError, string(domain.KindInternal), MsgInternalError, nil)
}
