package domain

import (
	"strings"
	"time"
)

// OfferQuery is a single provider search for one date pair.
type OfferQuery struct {
	Origin      string
	Destination string
	Dates       DatePair
	Passengers  Passengers
	Cabin       Cabin

	// NonStop asks the provider to return direct flights only
	NonStop bool
}

// Segment is one flight within an itinerary leg.
type Segment struct {
	CarrierCode string
	Number      string
	From        string
	To          string
	DepartureAt time.Time
	ArrivalAt   time.Time
	Duration    int
}

// FlightNumber returns the carrier code and number joined, e.g. "AF166".
func (s Segment) FlightNumber() string {
	return s.CarrierCode + s.Number
}

// OfferLeg is one direction of travel (outbound or return).
type OfferLeg struct {
	DurationMinutes int
	Segments        []Segment
}

// Stops returns the number of intermediate stops on the leg.
func (l OfferLeg) Stops() int {
	if len(l.Segments) == 0 {
		return 0
	}
	return len(l.Segments) - 1
}

// Offer is a provider offer normalized into domain terms.
type Offer struct {
	ID string

	// Provider is the source of the offer
	Provider string

	// GrandTotal is the total price for all passengers
	GrandTotal float64
	Currency   string

	Legs []OfferLeg

	// Dates is the date pair the offer was returned for
	Dates DatePair
}

// Stops returns the maximum number of stops over all legs.
func (o Offer) Stops() int {
	maxStops := 0
	for _, l := range o.Legs {
		if s := l.Stops(); s > maxStops {
			maxStops = s
		}
	}
	return maxStops
}

// TotalDurationMinutes sums the leg durations.
func (o Offer) TotalDurationMinutes() int {
	total := 0
	for _, l := range o.Legs {
		total += l.DurationMinutes
	}
	return total
}

// PricePerPax splits the grand total across the travellers.
func (o Offer) PricePerPax(p Passengers) float64 {
	return o.GrandTotal / float64(p.Total())
}

// Carriers returns the distinct marketing carriers in order of first appearance.
func (o Offer) Carriers() []string {
	seen := make(map[string]struct{})
	carriers := make([]string, 0, 2)
	for _, l := range o.Legs {
		for _, s := range l.Segments {
			if _, ok := seen[s.CarrierCode]; ok || s.CarrierCode == "" {
				continue
			}
			seen[s.CarrierCode] = struct{}{}
			carriers = append(carriers, s.CarrierCode)
		}
	}
	return carriers
}

// Signature identifies the physical flights of the offer: carrier, number and
// departure time of every segment. Two offers with the same signature are the
// same trip sold at possibly different prices.
func (o Offer) Signature() string {
	var b strings.Builder
	for i, l := range o.Legs {
		if i > 0 {
			b.WriteByte('|')
		}
		for j, s := range l.Segments {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s.FlightNumber())
			b.WriteByte('@')
			b.WriteString(s.DepartureAt.Format("2006-01-02T15:04"))
		}
	}
	return b.String()
}

// FirstDeparture returns the departure time of the first segment.
func (o Offer) FirstDeparture() time.Time {
	if len(o.Legs) == 0 || len(o.Legs[0].Segments) == 0 {
		return time.Time{}
	}
	return o.Legs[0].Segments[0].DepartureAt
}
