package usecase

import "github.com/itnr/itnr-api/internal/domain"

// ApplyFilters applies the given filter options to a list of offers.
// It returns a new slice containing only offers that match all filter criteria.
//
// Behavior:
//   - Returns the original slice if opts is nil (no filtering)
//   - Offers without legs never pass
//   - Does NOT mutate the original offers slice
//
// Example usage:
//
//	budget := 900.0
//	opts := &domain.FilterOptions{MaxPricePerPax: &budget, Passengers: pax}
//	kept := ApplyFilters(offers, opts)
func ApplyFilters(offers []domain.Offer, opts *domain.FilterOptions) []domain.Offer {
	if opts == nil {
		return offers
	}

	result := make([]domain.Offer, 0, len(offers))
	for _, o := range offers {
		if opts.MatchesOffer(o) {
			result = append(result, o)
		}
	}
	return result
}

// DedupeOffers collapses offers that fly the same segments at the same times,
// keeping the cheapest. Order of first appearance is preserved.
func DedupeOffers(offers []domain.Offer) []domain.Offer {
	if len(offers) <= 1 {
		return offers
	}

	index := make(map[string]int, len(offers))
	result := make([]domain.Offer, 0, len(offers))
	for _, o := range offers {
		sig := o.Signature()
		if i, ok := index[sig]; ok {
			if o.GrandTotal < result[i].GrandTotal {
				result[i] = o
			}
			continue
		}
		index[sig] = len(result)
		result = append(result, o)
	}
	return result
}
