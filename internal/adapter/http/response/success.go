package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`

	// Provider reports whether provider credentials are configured
	Provider string `json:"provider" example:"configured"`

	// Cache is "redis", "unreachable" when the ping fails, or "disabled"
	Cache string `json:"cache,omitempty" example:"disabled"`
}

// Health writes a health check response.
func Health(c echo.Context, h HealthResponse) error {
	if h.Status == "" {
		h.Status = "ok"
	}
	return c.JSON(http.StatusOK, &h)
}

// SearchResults writes a 200 OK response with search results.
func SearchResults(c echo.Context, results any) error {
	return c.JSON(http.StatusOK, results)
}
