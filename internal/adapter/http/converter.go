package http

import (
	"github.com/itnr/itnr-api/internal/domain"
)

// ToDomainRequest converts a validated SearchRequest to domain.SearchRequest.
func ToDomainRequest(req *SearchRequest) domain.SearchRequest {
	out := domain.SearchRequest{
		OriginCity:      req.OriginCity,
		DestinationCity: req.DestinationCity,
		DepartureDate:   req.DepartureDate,
		ReturnDate:      req.ReturnDate,
		MaxStops:        req.MaxStops,
		BudgetPerPax:    req.BudgetPerPaxEUR,
	}

	if req.Period != nil {
		out.Period = &domain.Period{
			Start:        req.Period.Start,
			DurationDays: req.Period.DurationDays,
		}
	}

	if req.Passengers != nil {
		out.Passengers = domain.Passengers{
			Adults:   req.Passengers.Adults,
			Children: req.Passengers.Children,
			Infants:  req.Passengers.Infants,
		}
	}

	// The validator has already rejected unknown cabins
	if cabin, err := domain.ParseCabin(req.Cabin); err == nil {
		out.Cabin = cabin
	}

	return out
}
