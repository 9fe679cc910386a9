package amadeus

import (
	"context"
	"net/url"

	"github.com/itnr/itnr-api/internal/domain"
)

const (
	locationsPath = "/v1/reference-data/locations"

	// locationsLimit caps the reference-data page size
	locationsLimit = "10"
)

type locationsResponse struct {
	Data []location `json:"data"`
}

type location struct {
	Type     string `json:"type"`
	SubType  string `json:"subType"`
	Name     string `json:"name"`
	IATACode string `json:"iataCode"`
	Address  struct {
		CityName    string `json:"cityName"`
		CityCode    string `json:"cityCode"`
		CountryCode string `json:"countryCode"`
	} `json:"address"`
}

// LookupLocations searches cities and airports matching keyword.
// Results keep the provider's relevance order.
func (c *Client) LookupLocations(ctx context.Context, keyword string) ([]domain.Location, error) {
	params := url.Values{}
	params.Set("subType", domain.SubTypeCity+","+domain.SubTypeAirport)
	params.Set("keyword", keyword)
	params.Set("page[limit]", locationsLimit)

	var resp locationsResponse
	if err := c.getJSON(ctx, endpointLocations, locationsPath, params, &resp); err != nil {
		return nil, err
	}

	result := make([]domain.Location, 0, len(resp.Data))
	for _, l := range resp.Data {
		if l.IATACode == "" {
			continue
		}
		result = append(result, domain.Location{
			IATACode: l.IATACode,
			SubType:  l.SubType,
			Name:     l.Name,
			CityName: l.Address.CityName,
			CityCode: l.Address.CityCode,
		})
	}
	return result, nil
}
