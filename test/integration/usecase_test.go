package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/itnr/itnr-api/internal/adapter/cache"
	"github.com/itnr/itnr-api/internal/domain"
	"github.com/itnr/itnr-api/internal/usecase"
	"github.com/itnr/itnr-api/test/mock"
	"github.com/itnr/itnr-api/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(p *mock.Provider, locations domain.LocationCache, cfg *usecase.Config) usecase.FlightSearchUseCase {
	return usecase.NewFlightSearchUseCase(p, usecase.NewCityResolver(p, locations), cfg)
}

// TestFlightSearch_OrdersByPrice checks that offers from the provider come
// back cheapest first with per-passenger prices.
func TestFlightSearch_OrdersByPrice(t *testing.T) {
	// Arrange
	dep := testutil.MustParseTime(t, "2025-03-10T10:00:00Z")
	provider := mock.NewProvider("mock").WithOffers([]domain.Offer{
		mock.SampleOffer("b", "TG", 1600, 0, dep),
		mock.SampleOffer("a", "QR", 1200, 1, dep.Add(time.Hour)),
		mock.SampleOffer("c", "EK", 1400, 1, dep.Add(2*time.Hour)),
	})
	uc := newUseCase(provider, cache.NewNoOpCache(), nil)

	// Act
	result, err := uc.Search(context.Background(), ParisBangkokRequest())

	// Assert
	require.NoError(t, err)
	require.Len(t, result.Results, 3)
	assert.Equal(t, "a", result.Results[0].ID)
	assert.Equal(t, "c", result.Results[1].ID)
	assert.Equal(t, "b", result.Results[2].ID)
	assert.InDelta(t, 600.0, result.Results[0].Price.PerPax, 0.001)

	require.NotNil(t, result.Highlights.Direct)
	assert.Equal(t, "b", result.Highlights.Direct.ID)

	queries := provider.Queries()
	require.Len(t, queries, 1)
	assert.Equal(t, "PAR", queries[0].Origin)
	assert.Equal(t, "BKK", queries[0].Destination)
	assert.False(t, queries[0].NonStop)
}

func TestFlightSearch_DirectOnlyAsksProviderForNonStop(t *testing.T) {
	provider := mock.NewProvider("mock").WithOffers(mock.SampleOffers(2))
	uc := newUseCase(provider, cache.NewNoOpCache(), nil)

	req := ParisBangkokRequest()
	req.MaxStops = testutil.IntPtr(0)
	req.BudgetPerPax = nil

	result, err := uc.Search(context.Background(), req)

	require.NoError(t, err)
	assert.Len(t, result.Results, 2)
	require.Len(t, provider.Queries(), 1)
	assert.True(t, provider.Queries()[0].NonStop)
}

func TestFlightSearch_LargeMaxStopsFiltersNothing(t *testing.T) {
	dep := testutil.MustParseTime(t, "2025-03-10T10:00:00Z")
	provider := mock.NewProvider("mock").WithOffers([]domain.Offer{
		mock.SampleOffer("direct", "AF", 1400, 0, dep),
		mock.SampleOffer("one", "QR", 1200, 1, dep),
		mock.SampleOffer("two", "EK", 1000, 2, dep),
	})
	uc := newUseCase(provider, cache.NewNoOpCache(), nil)

	req := ParisBangkokRequest()
	req.MaxStops = testutil.IntPtr(5)
	req.BudgetPerPax = nil

	result, err := uc.Search(context.Background(), req)

	require.NoError(t, err)
	assert.Len(t, result.Results, 3)
	require.Len(t, provider.Queries(), 1)
	assert.False(t, provider.Queries()[0].NonStop)
}

func TestFlightSearch_ProviderResolvedCityIsCached(t *testing.T) {
	// Arrange
	stack := NewStack(t, StackOptions{})
	provider := mock.NewProvider("mock").
		WithOffers(mock.SampleOffers(1)).
		WithLocations("REYKJAVIK", []domain.Location{
			{IATACode: "KEF", SubType: domain.SubTypeAirport, Name: "Keflavik Intl"},
			{IATACode: "REK", SubType: domain.SubTypeCity, Name: "Reykjavik"},
		})
	uc := newUseCase(provider, stack.Cache, nil)

	req := ParisBangkokRequest()
	req.DestinationCity = "Reykjavik"
	req.BudgetPerPax = nil

	// Act
	first, err := uc.Search(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Search(context.Background(), req)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "REK", first.Meta.Destination.Code)
	assert.Equal(t, domain.SourceProvider, first.Meta.Destination.Source)
	assert.Equal(t, []string{"KEF"}, first.Meta.Destination.Alternates)

	assert.Equal(t, "REK", second.Meta.Destination.Code)
	assert.Equal(t, domain.SourceCache, second.Meta.Destination.Source)

	assert.Equal(t, 1, provider.LookupCount())
	assert.True(t, stack.Redis.Exists("itnr:location:reykjavik"))
}

func TestFlightSearch_CacheOutageFallsBackToProvider(t *testing.T) {
	stack := NewStack(t, StackOptions{})
	stack.Redis.Close()

	provider := mock.NewProvider("mock").
		WithOffers(mock.SampleOffers(1)).
		WithLocations("REYKJAVIK", []domain.Location{{IATACode: "REK", SubType: domain.SubTypeCity, Name: "Reykjavik"}})
	uc := newUseCase(provider, stack.Cache, nil)

	req := ParisBangkokRequest()
	req.DestinationCity = "Reykjavik"
	req.BudgetPerPax = nil

	result, err := uc.Search(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "REK", result.Meta.Destination.Code)
	assert.Equal(t, 1, provider.LookupCount())
}

func TestFlightSearch_PeriodQueriesEveryPair(t *testing.T) {
	// Arrange
	base := testutil.MustParseTime(t, "2025-03-10T10:00:00Z")
	provider := mock.NewProvider("mock").
		WithOffersOn("2025-03-10", []domain.Offer{mock.SampleOffer("p1", "AF", 1500, 0, base)}).
		WithOffersOn("2025-03-13", []domain.Offer{mock.SampleOffer("p2", "AF", 1300, 0, base.AddDate(0, 0, 3))}).
		WithOffersOn("2025-03-16", []domain.Offer{mock.SampleOffer("p3", "AF", 1700, 0, base.AddDate(0, 0, 6))})
	uc := newUseCase(provider, cache.NewNoOpCache(), &usecase.Config{MaxConcurrency: 2})

	req := ParisBangkokRequest()
	req.DepartureDate, req.ReturnDate = "", ""
	req.Period = &domain.Period{Start: "2025-03-10", DurationDays: 7}
	req.BudgetPerPax = nil

	// Act
	result, err := uc.Search(context.Background(), req)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, provider.CallCount())
	require.Len(t, result.Results, 3)
	assert.Equal(t, []string{"p2", "p1", "p3"}, []string{result.Results[0].ID, result.Results[1].ID, result.Results[2].ID})
	assert.Equal(t, "2025-03-13", result.Results[0].Dates.DepartureDate)
	assert.Equal(t, testutil.AddDays(t, "2025-03-13", 7), result.Results[0].Dates.ReturnDate)
}

func TestFlightSearch_ErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind domain.Kind
	}{
		{
			name:     "auth",
			err:      domain.NewProviderAuthError("mock", 401, errors.New("invalid_client")),
			wantKind: domain.KindAuth,
		},
		{
			name:     "timeout",
			err:      domain.NewProviderTimeoutError("mock"),
			wantKind: domain.KindTimeout,
		},
		{
			name:     "upstream 500",
			err:      domain.NewProviderResponseError("mock", 500, "internal"),
			wantKind: domain.KindProvider,
		},
		{
			name:     "not configured",
			err:      domain.ErrProviderNotConfigured,
			wantKind: domain.KindServiceUnavailable,
		},
		{
			name:     "unclassified",
			err:      errors.New("boom"),
			wantKind: domain.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := mock.NewProvider("mock").WithError(tt.err)
			uc := newUseCase(provider, cache.NewNoOpCache(), nil)

			result, err := uc.Search(context.Background(), ParisBangkokRequest())

			require.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, tt.wantKind, domain.KindOf(err))
		})
	}
}

func TestFlightSearch_SlowProviderHitsRequestDeadline(t *testing.T) {
	provider := mock.NewProvider("mock").
		WithOffers(mock.SampleOffers(1)).
		WithDelay(time.Second)
	uc := newUseCase(provider, cache.NewNoOpCache(), &usecase.Config{RequestTimeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := uc.Search(context.Background(), ParisBangkokRequest())

	require.Error(t, err)
	assert.Equal(t, domain.KindTimeout, domain.KindOf(err))
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestFlightSearch_CallerCancellation(t *testing.T) {
	provider := mock.NewProvider("mock").
		WithOffers(mock.SampleOffers(1)).
		WithDelay(time.Second)
	uc := newUseCase(provider, cache.NewNoOpCache(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := uc.Search(ctx, ParisBangkokRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFlightSearch_SameCityRejected(t *testing.T) {
	provider := mock.NewProvider("mock").WithOffers(mock.SampleOffers(1))
	uc := newUseCase(provider, cache.NewNoOpCache(), nil)

	req := ParisBangkokRequest()
	req.DestinationCity = "paris"

	_, err := uc.Search(context.Background(), req)

	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Equal(t, 0, provider.CallCount())
}
