package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/itnr/itnr-api/internal/domain"
	"github.com/itnr/itnr-api/internal/infrastructure/logger"
	"golang.org/x/sync/errgroup"
)

// FlightSearchUseCase defines the interface for itinerary search operations.
type FlightSearchUseCase interface {
	// Search resolves both cities, queries the provider once per date pair and
	// returns the shaped, price-ordered itineraries.
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)
}

// flightSearchUseCase fans out one provider call per date pair.
type flightSearchUseCase struct {
	provider domain.FlightProvider
	resolver *CityResolver
	dates    *DateWindowNormalizer
	cfg      Config
}

// NewFlightSearchUseCase creates a new FlightSearchUseCase.
// If config is nil, default values are used.
func NewFlightSearchUseCase(provider domain.FlightProvider, resolver *CityResolver, config *Config) FlightSearchUseCase {
	cfg := config.merge()

	return &flightSearchUseCase{
		provider: provider,
		resolver: resolver,
		dates:    NewDateWindowNormalizer(cfg.PeriodCandidates, cfg.PeriodStepDays),
		cfg:      cfg,
	}
}

// Search implements FlightSearchUseCase.Search.
func (uc *flightSearchUseCase) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	startTime := time.Now()

	req.SetDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.RequestTimeout)
	defer cancel()

	log := logger.FromContext(ctx)

	origin, err := uc.resolver.Resolve(ctx, req.OriginCity)
	if err != nil {
		return nil, uc.deadlineError(ctx, err)
	}
	destination, err := uc.resolver.Resolve(ctx, req.DestinationCity)
	if err != nil {
		return nil, uc.deadlineError(ctx, err)
	}
	if origin.Code == destination.Code {
		return nil, domain.NewValidationError("destinationCity", "origin and destination resolve to the same location "+origin.Code)
	}

	pairs, err := uc.dates.Normalize(req)
	if err != nil {
		return nil, err
	}

	offers, err := uc.searchPairs(ctx, origin.Code, destination.Code, pairs, req)
	if err != nil {
		log.Warn().Err(err).
			Str("origin", origin.Code).
			Str("destination", destination.Code).
			Int("pairs", len(pairs)).
			Msg("search failed")
		return nil, uc.deadlineError(ctx, err)
	}

	shaped := ShapeOffers(offers, domain.FilterOptions{
		MaxStops:       req.MaxStops,
		MaxPricePerPax: req.BudgetPerPax,
		Passengers:     req.Passengers,
		RequireReturn:  pairs[0].IsRoundTrip(),
	})

	response := domain.NewSearchResponse(shaped.Results, shaped.Highlights, domain.SearchMeta{
		Origin:          origin,
		Destination:     destination,
		DatePairs:       pairs,
		Passengers:      req.Passengers,
		Cabin:           req.Cabin,
		MaxStops:        req.MaxStops,
		BudgetPerPax:    req.BudgetPerPax,
		Currency:        uc.cfg.Currency,
		TotalCandidates: len(offers),
		SearchTimeMs:    time.Since(startTime).Milliseconds(),
	})

	log.Info().
		Str("origin", origin.Code).
		Str("destination", destination.Code).
		Int("pairs", len(pairs)).
		Int("candidates", response.Meta.TotalCandidates).
		Int("kept", response.Meta.Kept).
		Int64("duration_ms", response.Meta.SearchTimeMs).
		Msg("search completed")

	return response, nil
}

// searchPairs queries every date pair with bounded concurrency and merges the
// offers in pair order. The first failure cancels the remaining calls.
func (uc *flightSearchUseCase) searchPairs(
	ctx context.Context,
	origin, destination string,
	pairs []domain.DatePair,
	req domain.SearchRequest,
) ([]domain.Offer, error) {
	perPair := make([][]domain.Offer, len(pairs))
	nonStop := req.MaxStops != nil && *req.MaxStops == 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.cfg.MaxConcurrency)

	for i, pair := range pairs {
		query := domain.OfferQuery{
			Origin:      origin,
			Destination: destination,
			Dates:       pair,
			Passengers:  req.Passengers,
			Cabin:       req.Cabin,
			NonStop:     nonStop,
		}
		g.Go(func() error {
			offers, err := uc.queryProvider(gctx, query)
			if err != nil {
				return fmt.Errorf("dates %s: %w", pair, err)
			}
			perPair[i] = offers
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, o := range perPair {
		total += len(o)
	}
	merged := make([]domain.Offer, 0, total)
	for _, o := range perPair {
		merged = append(merged, o...)
	}
	return merged, nil
}

// queryProvider calls the provider with panic recovery, so that a faulty
// adapter fails the request instead of the process.
func (uc *flightSearchUseCase) queryProvider(ctx context.Context, q domain.OfferQuery) (offers []domain.Offer, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider %s panic: %v", uc.provider.Name(), r)
		}
	}()

	offers, err = uc.provider.SearchOffers(ctx, q)
	if err != nil {
		return nil, err
	}
	for i := range offers {
		offers[i].Dates = q.Dates
	}
	return offers, nil
}

// deadlineError reports an unclassified error caused by the expired request
// deadline as a provider timeout.
func (uc *flightSearchUseCase) deadlineError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && domain.KindOf(err) == domain.KindInternal {
		return fmt.Errorf("%w: %v", domain.NewProviderTimeoutError(uc.provider.Name()), err)
	}
	return err
}

// Ensure flightSearchUseCase implements FlightSearchUseCase at compile time.
var _ FlightSearchUseCase = (*flightSearchUseCase)(nil)
