// Package mock provides test doubles for the itinerary search service.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, specific responses).
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/itnr/itnr-api/internal/domain"
)

// Provider is a configurable mock implementation of domain.FlightProvider and
// domain.LocationProvider. Offers may be configured per departure date.
type Provider struct {
	name      string
	offers    []domain.Offer
	byDate    map[string][]domain.Offer
	locations map[string][]domain.Location
	err       error
	delay     time.Duration

	mu            sync.Mutex
	callCount     int
	lookupCount   int
	queries       []domain.OfferQuery
	lookupQueries []string
}

// NewProvider creates a new mock provider with the given name.
// The provider is configured using the builder pattern methods.
func NewProvider(name string) *Provider {
	return &Provider{
		name:      name,
		byDate:    make(map[string][]domain.Offer),
		locations: make(map[string][]domain.Location),
	}
}

// WithOffers configures the offers returned for every query.
func (p *Provider) WithOffers(offers []domain.Offer) *Provider {
	p.offers = offers
	return p
}

// WithOffersOn configures the offers returned for one departure date.
func (p *Provider) WithOffersOn(departureDate string, offers []domain.Offer) *Provider {
	p.byDate[departureDate] = offers
	return p
}

// WithLocations configures the lookup result for an upper-case keyword.
func (p *Provider) WithLocations(keyword string, locations []domain.Location) *Provider {
	p.locations[keyword] = locations
	return p
}

// WithError configures the provider to return the given error.
func (p *Provider) WithError(err error) *Provider {
	p.err = err
	return p
}

// WithDelay configures the provider to wait the given duration before responding.
func (p *Provider) WithDelay(d time.Duration) *Provider {
	p.delay = d
	return p
}

// Name returns the provider's identifier.
func (p *Provider) Name() string {
	return p.name
}

// SearchOffers implements domain.FlightProvider.
// It respects context cancellation, applies the configured delay,
// and returns the configured offers or error.
func (p *Provider) SearchOffers(ctx context.Context, q domain.OfferQuery) ([]domain.Offer, error) {
	p.mu.Lock()
	p.callCount++
	p.queries = append(p.queries, q)
	p.mu.Unlock()

	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}

	src := p.offers
	if dated, ok := p.byDate[q.Dates.DepartureDate]; ok {
		src = dated
	}

	// Callers may mutate the slice, so hand out a copy
	out := make([]domain.Offer, len(src))
	copy(out, src)
	return out, nil
}

// LookupLocations implements domain.LocationProvider.
func (p *Provider) LookupLocations(ctx context.Context, keyword string) ([]domain.Location, error) {
	p.mu.Lock()
	p.lookupCount++
	p.lookupQueries = append(p.lookupQueries, keyword)
	p.mu.Unlock()

	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.locations[keyword], nil
}

func (p *Provider) wait(ctx context.Context) error {
	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.delay):
		}
	}
	return ctx.Err()
}

// CallCount returns the number of times SearchOffers was called.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.callCount
}

// LookupCount returns the number of times LookupLocations was called.
func (p *Provider) LookupCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lookupCount
}

// Queries returns a copy of the offer queries received so far.
func (p *Provider) Queries() []domain.OfferQuery {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.OfferQuery, len(p.queries))
	copy(out, p.queries)
	return out
}

// Reset clears the recorded calls.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callCount = 0
	p.lookupCount = 0
	p.queries = nil
	p.lookupQueries = nil
}

// Ensure Provider implements the provider interfaces at compile time.
var (
	_ domain.FlightProvider   = (*Provider)(nil)
	_ domain.LocationProvider = (*Provider)(nil)
)

// SampleOffer builds a Paris-Bangkok round trip. The outbound leg has
// stops+1 segments flown by carrier; the return leg is direct.
func SampleOffer(id, carrier string, total float64, stops int, departure time.Time) domain.Offer {
	outMinutes := 720 + stops*120
	return domain.Offer{
		ID:         id,
		Provider:   "mock",
		GrandTotal: total,
		Currency:   "EUR",
		Legs: []domain.OfferLeg{
			sampleLeg(carrier, 100, "CDG", "BKK", departure, stops+1, outMinutes),
			sampleLeg(carrier, 900, "BKK", "CDG", departure.AddDate(0, 0, 7), 1, 750),
		},
	}
}

// SampleOffers returns count direct round trips priced 500, 600, ... EUR in total.
func SampleOffers(count int) []domain.Offer {
	base := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	offers := make([]domain.Offer, count)
	for i := range count {
		offers[i] = SampleOffer(
			fmt.Sprintf("offer-%d", i+1),
			"AF",
			500+float64(i*100),
			0,
			base.Add(time.Duration(i)*time.Hour),
		)
	}
	return offers
}

func sampleLeg(carrier string, firstNumber int, from, to string, dep time.Time, segments, minutes int) domain.OfferLeg {
	leg := domain.OfferLeg{DurationMinutes: minutes}
	per := minutes / segments
	hubs := []string{"DOH", "DXB", "IST"}
	at, prev := dep, from
	for i := range segments {
		next := to
		if i < segments-1 {
			next = hubs[i%len(hubs)]
		}
		leg.Segments = append(leg.Segments, domain.Segment{
			CarrierCode: carrier,
			Number:      fmt.Sprintf("%d", firstNumber+i),
			From:        prev,
			To:          next,
			DepartureAt: at,
			ArrivalAt:   at.Add(time.Duration(per) * time.Minute),
			Duration:    per,
		})
		at = at.Add(time.Duration(per+90) * time.Minute)
		prev = next
	}
	return leg
}
