package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }
func floatPtr(f float64) *float64 { return &f }

func TestSearchRequest_Validate(t *testing.T) {
	// Helper to create a valid base request
	validRequest := func() *SearchRequest {
		return &SearchRequest{
			OriginCity:      "Paris",
			DestinationCity: "Bangkok",
			DepartureDate:   "2025-01-20",
			ReturnDate:      "2025-02-03",
			Passengers:      Passengers{Adults: 2},
			Cabin:           CabinEconomy,
		}
	}

	tests := []struct {
		name        string
		modify      func(*SearchRequest)
		wantErr     bool
		errContains string
	}{
		{
			name:   "valid round trip passes",
			modify: func(r *SearchRequest) {},
		},
		{
			name:   "one-way passes",
			modify: func(r *SearchRequest) { r.ReturnDate = "" },
		},
		{
			name: "period passes",
			modify: func(r *SearchRequest) {
				r.DepartureDate, r.ReturnDate = "", ""
				r.Period = &Period{Start: "2025-03-01", DurationDays: 10}
			},
		},
		{
			name:        "empty origin fails",
			modify:      func(r *SearchRequest) { r.OriginCity = "  " },
			wantErr:     true,
			errContains: "originCity is required",
		},
		{
			name:        "empty destination fails",
			modify:      func(r *SearchRequest) { r.DestinationCity = "" },
			wantErr:     true,
			errContains: "destinationCity is required",
		},
		{
			name:        "both date forms fail",
			modify:      func(r *SearchRequest) { r.Period = &Period{Start: "2025-03-01", DurationDays: 10} },
			wantErr:     true,
			errContains: "not both",
		},
		{
			name:        "no date form fails",
			modify:      func(r *SearchRequest) { r.DepartureDate, r.ReturnDate = "", "" },
			wantErr:     true,
			errContains: "either departureDate or period is required",
		},
		{
			name:        "return without departure fails",
			modify:      func(r *SearchRequest) { r.DepartureDate = "" },
			wantErr:     true,
			errContains: "departureDate is required when returnDate is set",
		},
		{
			name:        "return before departure fails",
			modify:      func(r *SearchRequest) { r.ReturnDate = "2025-01-19" },
			wantErr:     true,
			errContains: "returnDate must be after departureDate",
		},
		{
			name:        "return equal to departure fails",
			modify:      func(r *SearchRequest) { r.ReturnDate = r.DepartureDate },
			wantErr:     true,
			errContains: "returnDate must be after departureDate",
		},
		{
			name:        "malformed departure fails",
			modify:      func(r *SearchRequest) { r.DepartureDate = "20-01-2025" },
			wantErr:     true,
			errContains: "departureDate must be in YYYY-MM-DD format",
		},
		{
			name: "zero period duration fails",
			modify: func(r *SearchRequest) {
				r.DepartureDate, r.ReturnDate = "", ""
				r.Period = &Period{Start: "2025-03-01", DurationDays: 0}
			},
			wantErr:     true,
			errContains: "period.durationDays must be positive",
		},
		{
			name: "malformed period start fails",
			modify: func(r *SearchRequest) {
				r.DepartureDate, r.ReturnDate = "", ""
				r.Period = &Period{Start: "March", DurationDays: 3}
			},
			wantErr:     true,
			errContains: "period.start",
		},
		{
			name:        "no adults fails",
			modify:      func(r *SearchRequest) { r.Passengers = Passengers{Children: 1} },
			wantErr:     true,
			errContains: "adults must be at least 1",
		},
		{
			name:        "more infants than adults fails",
			modify:      func(r *SearchRequest) { r.Passengers = Passengers{Adults: 1, Infants: 2} },
			wantErr:     true,
			errContains: "infants cannot exceed",
		},
		{
			name:        "too many passengers fails",
			modify:      func(r *SearchRequest) { r.Passengers = Passengers{Adults: 6, Children: 4} },
			wantErr:     true,
			errContains: "cannot exceed 9",
		},
		{
			name:        "invalid cabin fails",
			modify:      func(r *SearchRequest) { r.Cabin = "LOUNGE" },
			wantErr:     true,
			errContains: "cabin must be one of",
		},
		{
			name:        "negative max stops fails",
			modify:      func(r *SearchRequest) { r.MaxStops = intPtr(-1) },
			wantErr:     true,
			errContains: "maxStops must not be negative",
		},
		{
			name:   "zero max stops passes",
			modify: func(r *SearchRequest) { r.MaxStops = intPtr(0) },
		},
		{
			name:   "large max stops passes",
			modify: func(r *SearchRequest) { r.MaxStops = intPtr(5) },
		},
		{
			name:        "zero budget fails",
			modify:      func(r *SearchRequest) { r.BudgetPerPax = floatPtr(0) },
			wantErr:     true,
			errContains: "budgetPerPaxEUR must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.modify(req)

			err := req.Validate()

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.True(t, errors.Is(err, ErrInvalidRequest), "should wrap ErrInvalidRequest")
		})
	}
}

func TestSearchRequest_SetDefaults(t *testing.T) {
	req := &SearchRequest{}
	req.SetDefaults()

	assert.Equal(t, Passengers{Adults: 1}, req.Passengers)
	assert.Equal(t, CabinEconomy, req.Cabin)

	req = &SearchRequest{Passengers: Passengers{Adults: 3}, Cabin: CabinBusiness}
	req.SetDefaults()

	assert.Equal(t, 3, req.Passengers.Adults)
	assert.Equal(t, CabinBusiness, req.Cabin)
}

func TestParseCabin(t *testing.T) {
	tests := []struct {
		in      string
		want    Cabin
		wantErr bool
	}{
		{"", CabinEconomy, false},
		{"economy", CabinEconomy, false},
		{"Premium Economy", CabinPremiumEconomy, false},
		{"premium_economy", CabinPremiumEconomy, false},
		{" BUSINESS ", CabinBusiness, false},
		{"first", CabinFirst, false},
		{"lounge", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCabin(tt.in)
			if tt.wantErr {
				assert.True(t, IsInvalidRequest(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPassengers_Total(t *testing.T) {
	assert.Equal(t, 1, Passengers{}.Total(), "never below one")
	assert.Equal(t, 4, Passengers{Adults: 2, Children: 1, Infants: 1}.Total())
}

func TestDatePair(t *testing.T) {
	rt := DatePair{DepartureDate: "2025-01-20", ReturnDate: "2025-02-03"}
	ow := DatePair{DepartureDate: "2025-01-20"}

	assert.True(t, rt.IsRoundTrip())
	assert.False(t, ow.IsRoundTrip())
	assert.Equal(t, "2025-01-20/2025-02-03", rt.String())
	assert.Equal(t, "2025-01-20", ow.String())
}
