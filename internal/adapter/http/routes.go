package http

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes registers the search API routes and installs the request
// validator when none is set.
func RegisterRoutes(e *echo.Echo, h *FlightHandler) {
	if e.Validator == nil {
		e.Validator = NewRequestValidator()
	}

	e.GET("/health", h.Health)
	e.POST("/search", h.Search)
}

// RegisterSwagger serves the generated API docs under /swagger/*.
func RegisterSwagger(e *echo.Echo) {
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
