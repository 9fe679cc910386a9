package http

import (
	"github.com/itnr/itnr-api/internal/domain"
)

// SearchResponseDTO is the body of a successful POST /search.
type SearchResponseDTO struct {
	// Results are the kept itineraries, cheapest first; never null
	Results []domain.Itinerary `json:"results"`

	// Highlights point at the cheapest, recommended and fastest direct itinerary
	Highlights HighlightsDTO `json:"highlights"`

	Meta MetaDTO `json:"meta"`
}

// HighlightsDTO holds notable results. Any of them may be null.
type HighlightsDTO struct {
	Cheapest    *domain.Itinerary `json:"cheapest"`
	Recommended *domain.Itinerary `json:"recommended"`
	Direct      *domain.Itinerary `json:"direct"`
}

// MetaDTO echoes the query and summarizes the search execution.
type MetaDTO struct {
	Origin      LocationDTO       `json:"origin"`
	Destination LocationDTO       `json:"destination"`
	DatePairs   []domain.DatePair `json:"datePairs"`
	Passengers  domain.Passengers `json:"passengers"`
	Cabin       string            `json:"cabin" example:"ECONOMY"`
	MaxStops    *int              `json:"maxStops,omitempty" example:"1"`
	Budget      *float64          `json:"budgetPerPaxEUR,omitempty" example:"900"`
	Currency    string            `json:"currency" example:"EUR"`
	Count       int               `json:"count" example:"12"`
	Candidates  int               `json:"totalCandidates" example:"50"`
	Kept        int               `json:"kept" example:"12"`
	SearchTime  int64             `json:"searchTimeMs" example:"1830"`
}

// LocationDTO is a resolved city.
type LocationDTO struct {
	Query      string   `json:"query" example:"Paris"`
	Code       string   `json:"code" example:"PAR"`
	Name       string   `json:"name,omitempty" example:"Paris"`
	Alternates []string `json:"alternates,omitempty" example:"CDG,ORY"`
	Source     string   `json:"source" example:"table"`
}

// ToSearchResponseDTO converts a domain SearchResponse to a SearchResponseDTO.
func ToSearchResponseDTO(resp *domain.SearchResponse) *SearchResponseDTO {
	if resp == nil {
		return nil
	}

	results := resp.Results
	if results == nil {
		results = []domain.Itinerary{}
	}

	pairs := resp.Meta.DatePairs
	if pairs == nil {
		pairs = []domain.DatePair{}
	}

	return &SearchResponseDTO{
		Results: results,
		Highlights: HighlightsDTO{
			Cheapest:    resp.Highlights.Cheapest,
			Recommended: resp.Highlights.Recommended,
			Direct:      resp.Highlights.Direct,
		},
		Meta: MetaDTO{
			Origin:      toLocationDTO(resp.Meta.Origin),
			Destination: toLocationDTO(resp.Meta.Destination),
			DatePairs:   pairs,
			Passengers:  resp.Meta.Passengers,
			Cabin:       string(resp.Meta.Cabin),
			MaxStops:    resp.Meta.MaxStops,
			Budget:      resp.Meta.BudgetPerPax,
			Currency:    resp.Meta.Currency,
			Count:       len(results),
			Candidates:  resp.Meta.TotalCandidates,
			Kept:        resp.Meta.Kept,
			SearchTime:  resp.Meta.SearchTimeMs,
		},
	}
}

func toLocationDTO(loc domain.ResolvedLocation) LocationDTO {
	return LocationDTO{
		Query:      loc.Query,
		Code:       loc.Code,
		Name:       loc.Name,
		Alternates: loc.Alternates,
		Source:     loc.Source,
	}
}
