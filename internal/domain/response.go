package domain

// SearchResponse is the result of a search.
type SearchResponse struct {
	// Results are the kept itineraries, cheapest first
	Results []Itinerary

	// Highlights point at notable results
	Highlights Highlights

	// Meta describes what was searched and how much was kept
	Meta SearchMeta
}

// Highlights are notable picks among the results. Any of them may be nil.
type Highlights struct {
	Cheapest    *Itinerary
	Recommended *Itinerary
	Direct      *Itinerary
}

// SearchMeta echoes the query and summarizes the search.
type SearchMeta struct {
	Origin          ResolvedLocation
	Destination     ResolvedLocation
	DatePairs       []DatePair
	Passengers      Passengers
	Cabin           Cabin
	MaxStops        *int
	BudgetPerPax    *float64
	Currency        string
	TotalCandidates int
	Kept            int
	SearchTimeMs    int64
}

// NewSearchResponse creates a SearchResponse, never returning a nil result list.
func NewSearchResponse(results []Itinerary, highlights Highlights, meta SearchMeta) *SearchResponse {
	if results == nil {
		results = []Itinerary{}
	}
	meta.Kept = len(results)
	return &SearchResponse{
		Results:    results,
		Highlights: highlights,
		Meta:       meta,
	}
}
