package usecase

import (
	"time"

	"github.com/itnr/itnr-api/internal/domain"
)

// ShapeResult is the output of ShapeOffers.
type ShapeResult struct {
	Results    []domain.Itinerary
	Highlights domain.Highlights
}

// ShapeOffers turns raw offers into the response list: filter, dedupe,
// convert, score, then order by price. It is a pure function.
func ShapeOffers(offers []domain.Offer, opts domain.FilterOptions) ShapeResult {
	kept := DedupeOffers(ApplyFilters(offers, &opts))

	items := make([]domain.Itinerary, 0, len(kept))
	for _, o := range kept {
		items = append(items, domain.NewItinerary(o, opts.Passengers))
	}

	sorted := SortByPrice(CalculateRankingScores(items))

	return ShapeResult{
		Results:    sorted,
		Highlights: SelectHighlights(sorted),
	}
}

func firstDeparture(it domain.Itinerary) time.Time {
	if len(it.Legs) == 0 {
		return time.Time{}
	}
	return it.Legs[0].DepartureAt
}
