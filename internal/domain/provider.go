package domain

import "context"

//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=domain

// FlightProvider searches flight offers for a single date pair.
type FlightProvider interface {
	// Name returns the provider identifier used in logs and errors.
	Name() string

	// SearchOffers returns the offers for the query. An empty result is not an error.
	SearchOffers(ctx context.Context, q OfferQuery) ([]Offer, error)
}

// LocationProvider looks up cities and airports by keyword.
type LocationProvider interface {
	LookupLocations(ctx context.Context, keyword string) ([]Location, error)
}

// LocationCache stores earlier provider lookups, keyed by normalized city name.
type LocationCache interface {
	// GetLocation returns the cached location and whether it was found.
	GetLocation(ctx context.Context, key string) (ResolvedLocation, bool, error)

	// SetLocation stores a location.
	SetLocation(ctx context.Context, key string, loc ResolvedLocation) error
}
