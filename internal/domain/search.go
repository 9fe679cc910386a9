package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used throughout the API.
const DateLayout = "2006-01-02"

// MaxPassengers is the traveller limit enforced by the provider.
const MaxPassengers = 9

// Cabin is the requested travel class.
type Cabin string

// Supported cabins.
const (
	CabinEconomy        Cabin = "ECONOMY"
	CabinPremiumEconomy Cabin = "PREMIUM_ECONOMY"
	CabinBusiness       Cabin = "BUSINESS"
	CabinFirst          Cabin = "FIRST"
)

// IsValid checks if the cabin is one of the supported values.
func (c Cabin) IsValid() bool {
	switch c {
	case CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst:
		return true
	default:
		return false
	}
}

// ParseCabin normalizes a cabin string. Empty input yields CabinEconomy.
func ParseCabin(s string) (Cabin, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return CabinEconomy, nil
	}
	c := Cabin(strings.ReplaceAll(s, " ", "_"))
	if !c.IsValid() {
		return "", WrapInvalidRequest("cabin must be one of ECONOMY, PREMIUM_ECONOMY, BUSINESS, FIRST; got %q", s)
	}
	return c, nil
}

// Passengers holds the traveller counts by age band.
type Passengers struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// Total returns the number of travellers, never less than 1.
func (p Passengers) Total() int {
	total := p.Adults + p.Children + p.Infants
	if total < 1 {
		return 1
	}
	return total
}

// Validate checks passenger counts.
func (p Passengers) Validate() error {
	if p.Adults < 1 {
		return WrapInvalidRequest("passengers.adults must be at least 1")
	}
	if p.Children < 0 || p.Infants < 0 {
		return WrapInvalidRequest("passenger counts must be non-negative")
	}
	if p.Infants > p.Adults {
		return WrapInvalidRequest("passengers.infants cannot exceed passengers.adults")
	}
	if p.Adults+p.Children+p.Infants > MaxPassengers {
		return WrapInvalidRequest("total passengers cannot exceed %d", MaxPassengers)
	}
	return nil
}

// Period is an approximate travel window: a start date and a trip length.
type Period struct {
	Start        string `json:"start"`
	DurationDays int    `json:"durationDays"`
}

// DatePair is one concrete departure/return combination to query.
// ReturnDate is empty for one-way searches.
type DatePair struct {
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty"`
}

// IsRoundTrip reports whether the pair has a return date.
func (d DatePair) IsRoundTrip() bool {
	return d.ReturnDate != ""
}

// String returns "dep/ret" or "dep" for one-way pairs.
func (d DatePair) String() string {
	if d.IsRoundTrip() {
		return d.DepartureDate + "/" + d.ReturnDate
	}
	return d.DepartureDate
}

// SearchRequest is the validated input of a search.
// Exactly one of the explicit dates or Period is set.
type SearchRequest struct {
	OriginCity      string
	DestinationCity string

	DepartureDate string
	ReturnDate    string
	Period        *Period

	Passengers   Passengers
	Cabin        Cabin
	MaxStops     *int
	BudgetPerPax *float64
}

// HasExplicitDates reports whether the request uses the explicit date form.
func (r *SearchRequest) HasExplicitDates() bool {
	return r.DepartureDate != "" || r.ReturnDate != ""
}

// SetDefaults applies default values to empty optional fields.
func (r *SearchRequest) SetDefaults() {
	if r.Passengers == (Passengers{}) {
		r.Passengers = Passengers{Adults: 1}
	}
	if r.Cabin == "" {
		r.Cabin = CabinEconomy
	}
}

// Validate checks the request invariants.
// Returns a wrapped ErrInvalidRequest error if validation fails.
func (r *SearchRequest) Validate() error {
	if strings.TrimSpace(r.OriginCity) == "" {
		return WrapInvalidRequest("originCity is required")
	}
	if strings.TrimSpace(r.DestinationCity) == "" {
		return WrapInvalidRequest("destinationCity is required")
	}

	// Exactly one date form
	switch {
	case r.HasExplicitDates() && r.Period != nil:
		return WrapInvalidRequest("provide either departureDate/returnDate or period, not both")
	case !r.HasExplicitDates() && r.Period == nil:
		return WrapInvalidRequest("either departureDate or period is required")
	}

	if r.Period != nil {
		if err := r.validatePeriod(); err != nil {
			return err
		}
	} else if err := r.validateExplicitDates(); err != nil {
		return err
	}

	if err := r.Passengers.Validate(); err != nil {
		return err
	}

	if !r.Cabin.IsValid() {
		return WrapInvalidRequest("cabin must be one of ECONOMY, PREMIUM_ECONOMY, BUSINESS, FIRST; got %q", r.Cabin)
	}

	if r.MaxStops != nil && *r.MaxStops < 0 {
		return WrapInvalidRequest("maxStops must not be negative")
	}
	if r.BudgetPerPax != nil && *r.BudgetPerPax <= 0 {
		return WrapInvalidRequest("budgetPerPaxEUR must be positive")
	}

	return nil
}

func (r *SearchRequest) validateExplicitDates() error {
	if r.DepartureDate == "" {
		return WrapInvalidRequest("departureDate is required when returnDate is set")
	}
	dep, err := ParseDate(r.DepartureDate)
	if err != nil {
		return WrapInvalidRequest("departureDate must be in YYYY-MM-DD format, got %q", r.DepartureDate)
	}
	if r.ReturnDate == "" {
		return nil
	}
	ret, err := ParseDate(r.ReturnDate)
	if err != nil {
		return WrapInvalidRequest("returnDate must be in YYYY-MM-DD format, got %q", r.ReturnDate)
	}
	if !ret.After(dep) {
		return WrapInvalidRequest("returnDate must be after departureDate")
	}
	return nil
}

func (r *SearchRequest) validatePeriod() error {
	if _, err := ParseDate(r.Period.Start); err != nil {
		return WrapInvalidRequest("period.start must be in YYYY-MM-DD format, got %q", r.Period.Start)
	}
	if r.Period.DurationDays < 1 {
		return WrapInvalidRequest("period.durationDays must be positive, got %d", r.Period.DurationDays)
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}
