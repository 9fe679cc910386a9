// Package domain contains the core entities and rules of the itinerary search.
// Nothing in this package talks to the network; provider adapters translate
// their wire formats into these types.
package domain

import (
	"fmt"
	"time"
)

// Itinerary is a shaped offer as returned to API clients.
type Itinerary struct {
	// ID is the provider offer id
	ID string `json:"id"`

	// Price contains the total and per-passenger price
	Price PriceInfo `json:"price"`

	// Stops is the maximum number of stops over all legs (0 = direct)
	Stops int `json:"stops"`

	// Carriers lists the distinct carrier codes in order of appearance
	Carriers []string `json:"carriers"`

	// Duration is the summed flying time of all legs
	Duration DurationInfo `json:"duration"`

	// Legs are the outbound and, for round trips, return journeys
	Legs []Leg `json:"legs"`

	// Dates is the date pair this itinerary answers
	Dates DatePair `json:"dates"`

	// RankingScore is the weighted price/duration score, lower is better
	RankingScore float64 `json:"rankingScore"`
}

// PriceInfo contains pricing information.
type PriceInfo struct {
	Total    float64 `json:"total"`
	PerPax   float64 `json:"perPax"`
	Currency string  `json:"currency"`
}

// Leg is one direction of an itinerary.
type Leg struct {
	From        string        `json:"from"`
	To          string        `json:"to"`
	DepartureAt time.Time     `json:"departureAt"`
	ArrivalAt   time.Time     `json:"arrivalAt"`
	Stops       int           `json:"stops"`
	Duration    DurationInfo  `json:"duration"`
	Segments    []SegmentInfo `json:"segments"`
}

// SegmentInfo describes a single flight of a leg.
type SegmentInfo struct {
	FlightNumber string    `json:"flightNumber"`
	Carrier      string    `json:"carrier"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	DepartureAt  time.Time `json:"departureAt"`
	ArrivalAt    time.Time `json:"arrivalAt"`
}

// DurationInfo contains duration information.
type DurationInfo struct {
	// TotalMinutes is the duration in minutes
	TotalMinutes int `json:"totalMinutes"`

	// Formatted is a human-readable duration string (e.g., "18h 5m")
	Formatted string `json:"formatted"`
}

// NewDurationInfo creates a DurationInfo from total minutes and formats it.
func NewDurationInfo(totalMinutes int) DurationInfo {
	hours, mins := totalMinutes/60, totalMinutes%60

	var formatted string
	switch {
	case hours > 0 && mins > 0:
		formatted = fmt.Sprintf("%dh %dm", hours, mins)
	case hours > 0:
		formatted = fmt.Sprintf("%dh", hours)
	default:
		formatted = fmt.Sprintf("%dm", mins)
	}

	return DurationInfo{
		TotalMinutes: totalMinutes,
		Formatted:    formatted,
	}
}

// NewItinerary shapes an offer for the given travellers.
func NewItinerary(o Offer, pax Passengers) Itinerary {
	legs := make([]Leg, 0, len(o.Legs))
	for _, l := range o.Legs {
		legs = append(legs, newLeg(l))
	}

	return Itinerary{
		ID: o.ID,
		Price: PriceInfo{
			Total:    o.GrandTotal,
			PerPax:   roundCents(o.PricePerPax(pax)),
			Currency: o.Currency,
		},
		Stops:    o.Stops(),
		Carriers: o.Carriers(),
		Duration: NewDurationInfo(o.TotalDurationMinutes()),
		Legs:     legs,
		Dates:    o.Dates,
	}
}

func newLeg(l OfferLeg) Leg {
	leg := Leg{
		Stops:    l.Stops(),
		Duration: NewDurationInfo(l.DurationMinutes),
		Segments: make([]SegmentInfo, 0, len(l.Segments)),
	}
	if n := len(l.Segments); n > 0 {
		first, last := l.Segments[0], l.Segments[n-1]
		leg.From, leg.DepartureAt = first.From, first.DepartureAt
		leg.To, leg.ArrivalAt = last.To, last.ArrivalAt
	}
	for _, s := range l.Segments {
		leg.Segments = append(leg.Segments, SegmentInfo{
			FlightNumber: s.FlightNumber(),
			Carrier:      s.CarrierCode,
			From:         s.From,
			To:           s.To,
			DepartureAt:  s.DepartureAt,
			ArrivalAt:    s.ArrivalAt,
		})
	}
	return leg
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
