package domain

// Location sources.
const (
	SourceTable    = "table"
	SourceCode     = "code"
	SourceProvider = "provider"
	SourceCache    = "cache"
)

// Location subtypes returned by the provider's reference data.
const (
	SubTypeCity    = "CITY"
	SubTypeAirport = "AIRPORT"
)

// Location is a single reference-data entry from the provider.
type Location struct {
	IATACode string `json:"iataCode"`
	SubType  string `json:"subType"`
	Name     string `json:"name"`
	CityName string `json:"cityName,omitempty"`
	CityCode string `json:"cityCode,omitempty"`
}

// ResolvedLocation maps free text to an IATA code usable for a search.
type ResolvedLocation struct {
	// Query is the text as sent by the client
	Query string `json:"query"`

	// Code is the primary IATA code (city code when available)
	Code string `json:"code"`

	// Name is a display name for the location
	Name string `json:"name,omitempty"`

	// Alternates are other codes that serve the same city
	Alternates []string `json:"alternates,omitempty"`

	// Source tells where the mapping came from (table, code, cache, provider)
	Source string `json:"source"`
}
