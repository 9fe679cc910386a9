package domain

// FilterOptions defines the constraints an offer must satisfy to be kept.
type FilterOptions struct {
	// MaxStops filters out offers with more stops on any leg than this value
	// 0 = direct flights only, 1 = max 1 stop, etc.
	MaxStops *int

	// MaxPricePerPax filters out offers whose grand total divided by the
	// number of travellers exceeds this amount
	MaxPricePerPax *float64

	// Passengers is used to compute the per-passenger price
	Passengers Passengers

	// RequireReturn drops offers without a return leg
	RequireReturn bool
}

// MatchesOffer checks if an offer matches all the filter criteria.
func (f *FilterOptions) MatchesOffer(o Offer) bool {
	if f == nil {
		return true
	}

	if len(o.Legs) == 0 {
		return false
	}

	// Stops filter
	if f.MaxStops != nil && o.Stops() > *f.MaxStops {
		return false
	}

	// Budget filter
	if f.MaxPricePerPax != nil && o.PricePerPax(f.Passengers) > *f.MaxPricePerPax {
		return false
	}

	// Round-trip shape
	if f.RequireReturn && len(o.Legs) < 2 {
		return false
	}

	return true
}
