// Package http provides the HTTP handler layer for the itinerary search API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/itnr/itnr-api/internal/adapter/http/response"
	"github.com/itnr/itnr-api/internal/domain"
	"github.com/itnr/itnr-api/internal/infrastructure/logger"
	"github.com/itnr/itnr-api/internal/usecase"
	"github.com/labstack/echo/v4"
)

// healthPingTimeout bounds the cache round trip made by GET /health.
const healthPingTimeout = 2 * time.Second

// CachePinger checks that the location cache backend answers.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// HealthStatus describes the wiring reported by GET /health.
type HealthStatus struct {
	ProviderConfigured bool

	// Cache is pinged on every health check; nil means no cache is configured
	Cache CachePinger
}

// FlightHandler handles HTTP requests for itinerary search endpoints.
type FlightHandler struct {
	useCase usecase.FlightSearchUseCase
	health  HealthStatus
}

// NewFlightHandler creates a new FlightHandler with the given use case.
func NewFlightHandler(uc usecase.FlightSearchUseCase, health HealthStatus) *FlightHandler {
	return &FlightHandler{
		useCase: uc,
		health:  health,
	}
}

// Search handles POST /search
//
// @Summary Search flight itineraries
// @Description Resolves city names, expands the date window, queries the provider and returns filtered itineraries sorted by price
// @Tags search
// @Accept json
// @Produce json
// @Param request body SearchRequest true "Search criteria"
// @Success 200 {object} SearchResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation or resolution error"
// @Failure 401 {object} response.ErrorDetail "Provider rejected credentials"
// @Failure 403 {object} response.ErrorDetail "Provider denied access"
// @Failure 500 {object} response.ErrorDetail "Internal error"
// @Failure 502 {object} response.ErrorDetail "Unexpected provider response"
// @Failure 503 {object} response.ErrorDetail "Provider not configured"
// @Failure 504 {object} response.ErrorDetail "Provider timeout"
// @Router /search [post]
func (h *FlightHandler) Search(c echo.Context) error {
	var req SearchRequest

	// Bind request body
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	req.normalize()

	if err := c.Validate(&req); err != nil {
		return h.handleValidationError(c, err)
	}

	result, err := h.useCase.Search(c.Request().Context(), ToDomainRequest(&req))
	if err != nil {
		return h.handleError(c, err)
	}

	return response.SearchResults(c, ToSearchResponseDTO(result))
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *FlightHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	// Fallback for non-structured validation errors
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to HTTP responses by kind.
func (h *FlightHandler) handleError(c echo.Context, err error) error {
	kind := domain.KindOf(err)

	log := logger.FromContext(c.Request().Context())
	event := log.Warn()
	if kind == domain.KindInternal {
		event = log.Error()
	}
	event.Err(err).Str("kind", string(kind)).Msg("search failed")

	switch kind {
	case domain.KindValidation:
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return response.ValidationError(c, map[string]string{ve.Field: ve.Message})
		}
		return response.ValidationErrorWithMessage(c, validationMessage(err))

	case domain.KindResolution:
		var re *domain.ResolutionError
		city := ""
		if errors.As(err, &re) {
			city = re.City
		}
		return response.ResolutionError(c, resolutionMessage(err, re), city)

	case domain.KindAuth:
		return response.AuthError(c, domain.AuthStatus(err))

	case domain.KindTimeout:
		return response.GatewayTimeout(c)

	case domain.KindProvider:
		var pe *domain.ProviderError
		status := 0
		if errors.As(err, &pe) {
			status = pe.StatusCode
		}
		return response.BadGateway(c, status)

	case domain.KindServiceUnavailable:
		return response.ServiceUnavailable(c)
	}

	// The client went away; nobody reads this response
	if errors.Is(err, context.Canceled) {
		return response.RequestCancelled(c)
	}

	return response.InternalServerError(c)
}

// validationMessage strips the sentinel prefix from a wrapped ErrInvalidRequest.
func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), domain.ErrInvalidRequest.Error()+": ")
}

func resolutionMessage(err error, re *domain.ResolutionError) string {
	if re != nil {
		return re.Error()
	}
	return err.Error()
}

// Health handles GET /health
//
// @Summary Health check
// @Description Reports liveness, whether provider credentials are set and whether the cache answers a ping
// @Tags health
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /health [get]
func (h *FlightHandler) Health(c echo.Context) error {
	status := response.HealthResponse{
		Status:   "ok",
		Provider: "configured",
		Cache:    "disabled",
	}
	if !h.health.ProviderConfigured {
		status.Provider = "missing_credentials"
	}
	if h.health.Cache != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthPingTimeout)
		defer cancel()

		status.Cache = "redis"
		if err := h.health.Cache.Ping(ctx); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Msg("Location cache ping failed")
			status.Status = "degraded"
			status.Cache = "unreachable"
		}
	}
	return response.Health(c, status)
}
