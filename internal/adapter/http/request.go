// Package http provides the HTTP handler layer for the itinerary search API.
// It handles request parsing, validation, and response formatting.
package http

import (
	"strings"
)

// SearchRequest represents the request body of POST /search.
// Either departureDate (with an optional returnDate) or period must be set.
type SearchRequest struct {
	// OriginCity is a free-text city name or an IATA code (e.g., "Paris", "CDG")
	OriginCity string `json:"originCity" validate:"required,max=100" example:"Paris"`

	// DestinationCity is a free-text city name or an IATA code
	DestinationCity string `json:"destinationCity" validate:"required,max=100" example:"Bangkok"`

	// DepartureDate is the outbound date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2025-03-10"`

	// ReturnDate is the inbound date in YYYY-MM-DD format; omit for one-way
	ReturnDate string `json:"returnDate,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2025-03-17"`

	// Period is an approximate window, used instead of explicit dates
	Period *PeriodDTO `json:"period,omitempty"`

	// Passengers defaults to one adult
	Passengers *PassengersDTO `json:"passengers,omitempty"`

	// Cabin is ECONOMY, PREMIUM_ECONOMY, BUSINESS or FIRST (case-insensitive)
	Cabin string `json:"cabin,omitempty" validate:"omitempty,cabin" example:"ECONOMY"`

	// MaxStops filters offers with more stops on any leg (0 = direct only, no upper bound)
	MaxStops *int `json:"maxStops,omitempty" validate:"omitempty,min=0" example:"1"`

	// BudgetPerPaxEUR drops offers whose price per traveller exceeds it
	BudgetPerPaxEUR *float64 `json:"budgetPerPaxEUR,omitempty" validate:"omitempty,gt=0" example:"900"`
}

// PeriodDTO is an approximate travel window.
type PeriodDTO struct {
	// Start is the earliest departure date in YYYY-MM-DD format
	Start string `json:"start" validate:"required,datetime=2006-01-02" example:"2025-03-10"`

	// DurationDays is the trip length in days
	DurationDays int `json:"durationDays" validate:"required,min=1,max=365" example:"7"`
}

// PassengersDTO holds the traveller counts.
type PassengersDTO struct {
	Adults   int `json:"adults" validate:"min=1,max=9" example:"2"`
	Children int `json:"children" validate:"min=0,max=8" example:"0"`
	Infants  int `json:"infants" validate:"min=0,ltefield=Adults" example:"0"`
}

// normalize trims free-text fields in place.
func (r *SearchRequest) normalize() {
	r.OriginCity = strings.TrimSpace(r.OriginCity)
	r.DestinationCity = strings.TrimSpace(r.DestinationCity)
	r.DepartureDate = strings.TrimSpace(r.DepartureDate)
	r.ReturnDate = strings.TrimSpace(r.ReturnDate)
	r.Cabin = strings.TrimSpace(r.Cabin)
	if r.Period != nil {
		r.Period.Start = strings.TrimSpace(r.Period.Start)
	}
}
