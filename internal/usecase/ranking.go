package usecase

import (
	"math"
	"sort"

	"github.com/itnr/itnr-api/internal/domain"
)

// Ranking algorithm weights. They sum to 1.0.
const (
	// weightPrice is the weight for total price in ranking calculation.
	weightPrice = 0.6

	// weightDuration is the weight for total flying time in ranking calculation.
	weightDuration = 0.4
)

// CalculateRankingScores calculates the ranking score for each itinerary:
//
//	Score = (0.6 × NormalizedPrice) + (0.4 × NormalizedDuration)
//
// Normalized values are in [0, 1], 0 being the best (cheapest, shortest).
// Lower score = better value. When every itinerary has the same price (or
// duration) that factor contributes 0.
//
// Does NOT mutate the input slice.
func CalculateRankingScores(items []domain.Itinerary) []domain.Itinerary {
	if len(items) == 0 {
		return items
	}

	minPrice, maxPrice := findPriceRange(items)
	minDuration, maxDuration := findDurationRange(items)

	result := make([]domain.Itinerary, len(items))
	for i, it := range items {
		result[i] = it

		normPrice := normalizeValue(it.Price.Total, minPrice, maxPrice)
		normDuration := normalizeValue(float64(it.Duration.TotalMinutes), float64(minDuration), float64(maxDuration))

		result[i].RankingScore = roundScore(weightPrice*normPrice + weightDuration*normDuration)
	}

	return result
}

// normalizeValue normalizes a value to the range [0, 1] based on min and max.
// Returns 0 when min == max.
func normalizeValue(value, min, max float64) float64 {
	if max == min {
		return 0
	}
	return (value - min) / (max - min)
}

func roundScore(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// findPriceRange finds the minimum and maximum total price.
func findPriceRange(items []domain.Itinerary) (min, max float64) {
	if len(items) == 0 {
		return 0, 0
	}

	min = math.MaxFloat64
	max = 0
	for _, it := range items {
		if it.Price.Total < min {
			min = it.Price.Total
		}
		if it.Price.Total > max {
			max = it.Price.Total
		}
	}
	return min, max
}

// findDurationRange finds the minimum and maximum total duration in minutes.
func findDurationRange(items []domain.Itinerary) (min, max int) {
	if len(items) == 0 {
		return 0, 0
	}

	min = math.MaxInt
	max = 0
	for _, it := range items {
		if it.Duration.TotalMinutes < min {
			min = it.Duration.TotalMinutes
		}
		if it.Duration.TotalMinutes > max {
			max = it.Duration.TotalMinutes
		}
	}
	return min, max
}

// SortByPrice orders itineraries by ascending total price. Ties are broken by
// shorter duration, then by earlier first departure. The sort is stable and
// does NOT mutate the input slice.
func SortByPrice(items []domain.Itinerary) []domain.Itinerary {
	result := make([]domain.Itinerary, len(items))
	copy(result, items)

	if len(result) <= 1 {
		return result
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Price.Total != b.Price.Total {
			return a.Price.Total < b.Price.Total
		}
		if a.Duration.TotalMinutes != b.Duration.TotalMinutes {
			return a.Duration.TotalMinutes < b.Duration.TotalMinutes
		}
		return firstDeparture(a).Before(firstDeparture(b))
	})

	return result
}

// SelectHighlights picks the cheapest, recommended and cheapest direct
// itineraries from a price-ordered list. Each highlight is a copy.
func SelectHighlights(sorted []domain.Itinerary) domain.Highlights {
	var h domain.Highlights
	if len(sorted) == 0 {
		return h
	}

	cheapest := sorted[0]
	h.Cheapest = &cheapest

	best := 0
	for i, it := range sorted {
		if it.RankingScore < sorted[best].RankingScore {
			best = i
		}
	}
	recommended := sorted[best]
	h.Recommended = &recommended

	for _, it := range sorted {
		if it.Stops == 0 {
			direct := it
			h.Direct = &direct
			break
		}
	}

	return h
}
