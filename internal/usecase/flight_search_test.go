package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/itnr/itnr-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// parisBangkok is the request used by most tests.
func parisBangkok() domain.SearchRequest {
	return domain.SearchRequest{
		OriginCity:      "Paris",
		DestinationCity: "Bangkok",
		DepartureDate:   "2025-01-20",
		ReturnDate:      "2025-02-03",
		Passengers:      domain.Passengers{Adults: 2},
		MaxStops:        intPtr(1),
		BudgetPerPax:    floatPtr(900),
	}
}

// setupMockProvider creates a mock provider returning offers for every query.
func setupMockProvider(ctrl *gomock.Controller, offers []domain.Offer, err error) *domain.MockFlightProvider {
	mock := domain.NewMockFlightProvider(ctrl)
	mock.EXPECT().Name().Return("amadeus").AnyTimes()
	mock.EXPECT().SearchOffers(gomock.Any(), gomock.Any()).Return(offers, err).AnyTimes()
	return mock
}

// setupMockProviderWithDelay creates a mock provider that simulates network delay.
func setupMockProviderWithDelay(ctrl *gomock.Controller, offers []domain.Offer, delay time.Duration) *domain.MockFlightProvider {
	mock := domain.NewMockFlightProvider(ctrl)
	mock.EXPECT().Name().Return("amadeus").AnyTimes()
	mock.EXPECT().SearchOffers(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, q domain.OfferQuery) ([]domain.Offer, error) {
			select {
			case <-time.After(delay):
				return offers, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		},
	).AnyTimes()
	return mock
}

func newTestUseCase(provider domain.FlightProvider, cfg *Config) FlightSearchUseCase {
	return NewFlightSearchUseCase(provider, NewCityResolver(nil, nil), cfg)
}

func TestNewFlightSearchUseCase(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := setupMockProvider(ctrl, nil, nil)

	tests := []struct {
		name   string
		config *Config
		check  func(t *testing.T, uc *flightSearchUseCase)
	}{
		{
			name:   "with default config",
			config: nil,
			check: func(t *testing.T, uc *flightSearchUseCase) {
				assert.Equal(t, DefaultConfig(), uc.cfg)
			},
		},
		{
			name:   "with custom config",
			config: &Config{RequestTimeout: 10 * time.Second, MaxConcurrency: 5, Currency: "USD"},
			check: func(t *testing.T, uc *flightSearchUseCase) {
				assert.Equal(t, 10*time.Second, uc.cfg.RequestTimeout)
				assert.Equal(t, 5, uc.cfg.MaxConcurrency)
				assert.Equal(t, "USD", uc.cfg.Currency)
				assert.Equal(t, DefaultPeriodCandidates, uc.cfg.PeriodCandidates)
			},
		},
		{
			name:   "concurrency capped",
			config: &Config{MaxConcurrency: 50},
			check: func(t *testing.T, uc *flightSearchUseCase) {
				assert.Equal(t, MaxConcurrencyLimit, uc.cfg.MaxConcurrency)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(provider, tt.config)
			require.NotNil(t, uc)
			tt.check(t, uc.(*flightSearchUseCase))
		})
	}
}

func TestSearch_ParisBangkok(t *testing.T) {
	ctrl := gomock.NewController(t)

	offers := []domain.Offer{
		makeOffer("direct", "AF", 1780, 700, 0, testDeparture),
		makeOffer("one-stop", "EK", 1500, 900, 1, testDeparture),
		makeOffer("two-stops", "TK", 1100, 1300, 2, testDeparture),
		makeOffer("over-budget", "QR", 1900, 850, 1, testDeparture),
	}

	provider := domain.NewMockFlightProvider(ctrl)
	provider.EXPECT().Name().Return("amadeus").AnyTimes()
	provider.EXPECT().SearchOffers(gomock.Any(), domain.OfferQuery{
		Origin:      "PAR",
		Destination: "BKK",
		Dates:       domain.DatePair{DepartureDate: "2025-01-20", ReturnDate: "2025-02-03"},
		Passengers:  domain.Passengers{Adults: 2},
		Cabin:       domain.CabinEconomy,
		NonStop:     false,
	}).Return(offers, nil).Times(1)

	resp, err := newTestUseCase(provider, nil).Search(context.Background(), parisBangkok())
	require.NoError(t, err)

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "one-stop", resp.Results[0].ID)
	assert.Equal(t, "direct", resp.Results[1].ID)
	for _, it := range resp.Results {
		assert.LessOrEqual(t, it.Stops, 1)
		assert.LessOrEqual(t, it.Price.PerPax, 900.0)
		assert.Equal(t, domain.DatePair{DepartureDate: "2025-01-20", ReturnDate: "2025-02-03"}, it.Dates)
	}

	assert.Equal(t, "PAR", resp.Meta.Origin.Code)
	assert.Equal(t, "BKK", resp.Meta.Destination.Code)
	assert.Equal(t, 4, resp.Meta.TotalCandidates)
	assert.Equal(t, 2, resp.Meta.Kept)
	assert.Equal(t, "EUR", resp.Meta.Currency)
	assert.Equal(t, domain.CabinEconomy, resp.Meta.Cabin)
	assert.GreaterOrEqual(t, resp.Meta.SearchTimeMs, int64(0))

	require.NotNil(t, resp.Highlights.Direct)
	assert.Equal(t, "direct", resp.Highlights.Direct.ID)
}

func TestSearch_AppliesDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)

	provider := domain.NewMockFlightProvider(ctrl)
	provider.EXPECT().Name().Return("amadeus").AnyTimes()
	provider.EXPECT().SearchOffers(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q domain.OfferQuery) ([]domain.Offer, error) {
			assert.Equal(t, domain.Passengers{Adults: 1}, q.Passengers)
			assert.Equal(t, domain.CabinEconomy, q.Cabin)
			return nil, nil
		})

	req := domain.SearchRequest{OriginCity: "Paris", DestinationCity: "Tokyo", DepartureDate: "2025-03-01"}
	resp, err := newTestUseCase(provider, nil).Search(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.Passengers{Adults: 1}, resp.Meta.Passengers)
}

func TestSearch_NonStopWhenMaxStopsZero(t *testing.T) {
	ctrl := gomock.NewController(t)

	provider := domain.NewMockFlightProvider(ctrl)
	provider.EXPECT().Name().Return("amadeus").AnyTimes()
	provider.EXPECT().SearchOffers(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q domain.OfferQuery) ([]domain.Offer, error) {
			assert.True(t, q.NonStop)
			return nil, nil
		})

	req := parisBangkok()
	req.MaxStops = intPtr(0)
	_, err := newTestUseCase(provider, nil).Search(context.Background(), req)
	require.NoError(t, err)
}

func TestSearch_EmptyResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := setupMockProvider(ctrl, []domain.Offer{}, nil)

	resp, err := newTestUseCase(provider, nil).Search(context.Background(), parisBangkok())
	require.NoError(t, err)

	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
	assert.Equal(t, 0, resp.Meta.Kept)
	assert.Nil(t, resp.Highlights.Cheapest)
}

func TestSearch_PeriodFansOutInPairOrder(t *testing.T) {
	ctrl := gomock.NewController(t)

	var calls atomic.Int32
	var mu sync.Mutex
	seen := make([]domain.DatePair, 0, 3)

	provider := domain.NewMockFlightProvider(ctrl)
	provider.EXPECT().Name().Return("amadeus").AnyTimes()
	provider.EXPECT().SearchOffers(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q domain.OfferQuery) ([]domain.Offer, error) {
			calls.Add(1)
			mu.Lock()
			seen = append(seen, q.Dates)
			mu.Unlock()

			dep, _ := domain.ParseDate(q.Dates.DepartureDate)
			// Later pairs answer first and are cheaper
			delay := time.Duration(30-dep.Day()) * time.Millisecond
			time.Sleep(delay)
			return []domain.Offer{makeOffer("offer-"+q.Dates.DepartureDate, "AF", 1000, 700, 0, dep.Add(10*time.Hour))}, nil
		}).Times(3)

	req := parisBangkok()
	req.DepartureDate, req.ReturnDate = "", ""
	req.Period = &domain.Period{Start: "2025-01-20", DurationDays: 14}

	resp, err := newTestUseCase(provider, nil).Search(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int32(3), calls.Load())
	assert.ElementsMatch(t, resp.Meta.DatePairs, seen)
	assert.Equal(t, []domain.DatePair{
		{DepartureDate: "2025-01-20", ReturnDate: "2025-02-03"},
		{DepartureDate: "2025-01-23", ReturnDate: "2025-02-06"},
		{DepartureDate: "2025-01-26", ReturnDate: "2025-02-09"},
	}, resp.Meta.DatePairs)

	// Same price and duration: earliest departure first, i.e. pair order
	require.Len(t, resp.Results, 3)
	assert.Equal(t, "offer-2025-01-20", resp.Results[0].ID)
	assert.Equal(t, "offer-2025-01-23", resp.Results[1].ID)
	assert.Equal(t, "offer-2025-01-26", resp.Results[2].ID)
	assert.Equal(t, "2025-01-23", resp.Results[1].Dates.DepartureDate)
}

func TestSearch_BoundedConcurrency(t *testing.T) {
	ctrl := gomock.NewController(t)

	var inFlight, peak atomic.Int32
	provider := domain.NewMockFlightProvider(ctrl)
	provider.EXPECT().Name().Return("amadeus").AnyTimes()
	provider.EXPECT().SearchOffers(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.OfferQuery) ([]domain.Offer, error) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			inFlight.Add(-1)
			return nil, nil
		}).Times(7)

	req := parisBangkok()
	req.DepartureDate, req.ReturnDate = "", ""
	req.Period = &domain.Period{Start: "2025-01-20", DurationDays: 7}

	uc := newTestUseCase(provider, &Config{MaxConcurrency: 2, PeriodCandidates: 7, PeriodStepDays: 1})
	_, err := uc.Search(context.Background(), req)
	require.NoError(t, err)

	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestSearch_ValidationErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := domain.NewMockFlightProvider(ctrl)
	provider.EXPECT().Name().Return("amadeus").AnyTimes()
	provider.EXPECT().SearchOffers(gomock.Any(), gomock.Any()).Times(0)

	tests := []struct {
		name   string
		mutate func(r *domain.SearchRequest)
	}{
		{"missing origin", func(r *domain.SearchRequest) { r.OriginCity = "" }},
		{"both date forms", func(r *domain.SearchRequest) { r.Period = &domain.Period{Start: "2025-01-20", DurationDays: 3} }},
		{"return before departure", func(r *domain.SearchRequest) { r.ReturnDate = "2025-01-01" }},
		{"negative stops", func(r *domain.SearchRequest) { r.MaxStops = intPtr(-1) }},
		{"same city", func(r *domain.SearchRequest) { r.DestinationCity = "PARIS" }},
		{"same code through alias", func(r *domain.SearchRequest) { r.OriginCity, r.DestinationCity = "New York", "NYC" }},
	}

	uc := newTestUseCase(provider, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := parisBangkok()
			tt.mutate(&req)

			resp, err := uc.Search(context.Background(), req)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		})
	}
}

func TestSearch_UnknownCity(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := domain.NewMockFlightProvider(ctrl)
	provider.EXPECT().Name().Return("amadeus").AnyTimes()
	provider.EXPECT().SearchOffers(gomock.Any(), gomock.Any()).Times(0)

	locations := domain.NewMockLocationProvider(ctrl)
	locations.EXPECT().LookupLocations(gomock.Any(), "ATLANTIS").Return(nil, nil)

	uc := NewFlightSearchUseCase(provider, NewCityResolver(locations, nil), nil)

	req := parisBangkok()
	req.DestinationCity = "Atlantis"
	_, err := uc.Search(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, domain.KindResolution, domain.KindOf(err))
}

func TestSearch_ProviderErrorsFailTheRequest(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected domain.Kind
	}{
		{"auth", domain.NewProviderAuthError("amadeus", 401, nil), domain.KindAuth},
		{"timeout", domain.NewProviderTimeoutError("amadeus"), domain.KindTimeout},
		{"bad gateway", domain.NewProviderResponseError("amadeus", 500, "internal error"), domain.KindProvider},
		{"not configured", domain.ErrProviderNotConfigured, domain.KindServiceUnavailable},
		{"unexpected", errors.New("boom"), domain.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			provider := setupMockProvider(ctrl, nil, tt.err)

			resp, err := newTestUseCase(provider, nil).Search(context.Background(), parisBangkok())
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Equal(t, tt.expected, domain.KindOf(err))
		})
	}
}

func TestSearch_OneFailingPairCancelsOthers(t *testing.T) {
	ctrl := gomock.NewController(t)

	var cancelled atomic.Int32
	provider := domain.NewMockFlightProvider(ctrl)
	provider.EXPECT().Name().Return("amadeus").AnyTimes()
	provider.EXPECT().SearchOffers(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, q domain.OfferQuery) ([]domain.Offer, error) {
			if q.Dates.DepartureDate == "2025-01-20" {
				return nil, domain.NewProviderResponseError("amadeus", 500, "boom")
			}
			select {
			case <-ctx.Done():
				cancelled.Add(1)
				return nil, ctx.Err()
			case <-time.After(2 * time.Second):
				return nil, nil
			}
		}).Times(3)

	req := parisBangkok()
	req.DepartureDate, req.ReturnDate = "", ""
	req.Period = &domain.Period{Start: "2025-01-20", DurationDays: 14}

	start := time.Now()
	_, err := newTestUseCase(provider, nil).Search(context.Background(), req)
	require.Error(t, err)

	assert.Equal(t, domain.KindProvider, domain.KindOf(err))
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, int32(2), cancelled.Load())
}

func TestSearch_RequestTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := setupMockProviderWithDelay(ctrl, nil, 500*time.Millisecond)

	uc := newTestUseCase(provider, &Config{RequestTimeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := uc.Search(context.Background(), parisBangkok())
	require.Error(t, err)

	assert.Equal(t, domain.KindTimeout, domain.KindOf(err))
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestSearch_ContextCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := setupMockProviderWithDelay(ctrl, nil, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := newTestUseCase(provider, nil).Search(ctx, parisBangkok())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearch_ProviderPanic(t *testing.T) {
	ctrl := gomock.NewController(t)

	provider := domain.NewMockFlightProvider(ctrl)
	provider.EXPECT().Name().Return("amadeus").AnyTimes()
	provider.EXPECT().SearchOffers(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, q domain.OfferQuery) ([]domain.Offer, error) {
			panic("nil map write")
		},
	)

	_, err := newTestUseCase(provider, nil).Search(context.Background(), parisBangkok())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic")
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
}
