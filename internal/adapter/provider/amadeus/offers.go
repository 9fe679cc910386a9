package amadeus

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/itnr/itnr-api/internal/domain"
	"github.com/itnr/itnr-api/internal/infrastructure/logger"
)

const offersPath = "/v2/shopping/flight-offers"

// flightOffersResponse is the body of GET /v2/shopping/flight-offers.
type flightOffersResponse struct {
	Meta struct {
		Count int `json:"count"`
	} `json:"meta"`
	Data []flightOffer `json:"data"`
}

type flightOffer struct {
	ID                     string      `json:"id"`
	Source                 string      `json:"source"`
	NumberOfBookableSeats  int         `json:"numberOfBookableSeats"`
	Itineraries            []itinerary `json:"itineraries"`
	Price                  offerPrice  `json:"price"`
	ValidatingAirlineCodes []string    `json:"validatingAirlineCodes"`
}

type offerPrice struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	Base       string `json:"base"`
	GrandTotal string `json:"grandTotal"`
}

type itinerary struct {
	Duration string    `json:"duration"`
	Segments []segment `json:"segments"`
}

type segment struct {
	Departure     endpoint `json:"departure"`
	Arrival       endpoint `json:"arrival"`
	CarrierCode   string   `json:"carrierCode"`
	Number        string   `json:"number"`
	Duration      string   `json:"duration"`
	NumberOfStops int      `json:"numberOfStops"`
}

type endpoint struct {
	IATACode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

// SearchOffers queries flight offers for one date pair.
// An empty data array yields an empty slice and no error.
func (c *Client) SearchOffers(ctx context.Context, q domain.OfferQuery) ([]domain.Offer, error) {
	var resp flightOffersResponse
	if err := c.getJSON(ctx, endpointOffers, offersPath, c.offerParams(q), &resp); err != nil {
		return nil, err
	}

	offers := normalize(resp.Data, c.cfg.Currency)
	if skipped := len(resp.Data) - len(offers); skipped > 0 {
		logger.FromContext(ctx).Debug().
			Str("provider", ProviderName).
			Int("skipped", skipped).
			Msg("dropped malformed offers")
	}
	for i := range offers {
		offers[i].Dates = q.Dates
	}
	return offers, nil
}

func (c *Client) offerParams(q domain.OfferQuery) url.Values {
	params := url.Values{}
	params.Set("originLocationCode", q.Origin)
	params.Set("destinationLocationCode", q.Destination)
	params.Set("departureDate", q.Dates.DepartureDate)
	if q.Dates.IsRoundTrip() {
		params.Set("returnDate", q.Dates.ReturnDate)
	}

	adults := q.Passengers.Adults
	if adults < 1 {
		adults = 1
	}
	params.Set("adults", strconv.Itoa(adults))
	if q.Passengers.Children > 0 {
		params.Set("children", strconv.Itoa(q.Passengers.Children))
	}
	if q.Passengers.Infants > 0 {
		params.Set("infants", strconv.Itoa(q.Passengers.Infants))
	}

	if q.Cabin != "" {
		params.Set("travelClass", string(q.Cabin))
	}
	if q.NonStop {
		params.Set("nonStop", "true")
	}
	params.Set("currencyCode", c.cfg.Currency)
	params.Set("max", strconv.Itoa(c.cfg.MaxResults))
	return params
}

// normalize converts wire offers to domain offers, skipping malformed ones.
func normalize(data []flightOffer, currency string) []domain.Offer {
	result := make([]domain.Offer, 0, len(data))

	for _, o := range data {
		normalized, err := normalizeOffer(o, currency)
		if err != nil {
			continue
		}
		result = append(result, normalized)
	}

	return result
}

func normalizeOffer(o flightOffer, currency string) (domain.Offer, error) {
	total, err := parsePrice(o.Price)
	if err != nil {
		return domain.Offer{}, err
	}
	if len(o.Itineraries) == 0 {
		return domain.Offer{}, fmt.Errorf("offer %s has no itineraries", o.ID)
	}

	legs := make([]domain.OfferLeg, 0, len(o.Itineraries))
	for i, it := range o.Itineraries {
		leg, err := normalizeItinerary(it)
		if err != nil {
			return domain.Offer{}, fmt.Errorf("offer %s itinerary %d: %w", o.ID, i, err)
		}
		legs = append(legs, leg)
	}

	if o.Price.Currency != "" {
		currency = o.Price.Currency
	}

	return domain.Offer{
		ID:         o.ID,
		Provider:   ProviderName,
		GrandTotal: total,
		Currency:   currency,
		Legs:       legs,
	}, nil
}

func normalizeItinerary(it itinerary) (domain.OfferLeg, error) {
	if len(it.Segments) == 0 {
		return domain.OfferLeg{}, fmt.Errorf("no segments")
	}

	segments := make([]domain.Segment, 0, len(it.Segments))
	sum := 0
	for _, s := range it.Segments {
		dep, err := parseDateTime(s.Departure.At)
		if err != nil {
			return domain.OfferLeg{}, fmt.Errorf("failed to parse departure time: %w", err)
		}
		arr, err := parseDateTime(s.Arrival.At)
		if err != nil {
			return domain.OfferLeg{}, fmt.Errorf("failed to parse arrival time: %w", err)
		}

		minutes, _ := parseISODuration(s.Duration)
		sum += minutes

		segments = append(segments, domain.Segment{
			CarrierCode: s.CarrierCode,
			Number:      s.Number,
			From:        s.Departure.IATACode,
			To:          s.Arrival.IATACode,
			DepartureAt: dep,
			ArrivalAt:   arr,
			Duration:    minutes,
		})
	}

	duration, err := parseISODuration(it.Duration)
	if err != nil || duration == 0 {
		// Falls back to flying time only, layovers excluded
		duration = sum
	}

	return domain.OfferLeg{
		DurationMinutes: duration,
		Segments:        segments,
	}, nil
}

// parsePrice reads grandTotal, falling back to total.
func parsePrice(p offerPrice) (float64, error) {
	raw := p.GrandTotal
	if raw == "" {
		raw = p.Total
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", raw, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("invalid price %q", raw)
	}
	return v, nil
}

// parseDateTime parses an ISO 8601 datetime string to time.Time.
// The provider sends airport local times without offset ("2025-01-20T10:15:00");
// those are kept as wall-clock values in UTC.
func parseDateTime(dateTime string) (time.Time, error) {
	// Try RFC3339 format first (with timezone)
	t, err := time.Parse(time.RFC3339, dateTime)
	if err == nil {
		return t, nil
	}

	// Try without timezone
	t, err = time.Parse("2006-01-02T15:04:05", dateTime)
	if err == nil {
		return t, nil
	}

	// Some payloads omit seconds
	t, err = time.Parse("2006-01-02T15:04", dateTime)
	if err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unable to parse datetime %q", dateTime)
}

// parseISODuration converts an ISO 8601 duration such as "PT18H5M" or
// "P1DT2H30M" to whole minutes. Seconds are dropped.
func parseISODuration(s string) (int, error) {
	if !strings.HasPrefix(s, "P") || len(s) < 3 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	total := 0
	inTime := false
	num := 0
	digits := 0
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
			num = num*10 + int(r-'0')
			digits++
			continue
		case r == 'T':
			if inTime || digits > 0 {
				return 0, fmt.Errorf("invalid duration %q", s)
			}
			inTime = true
			continue
		}

		if digits == 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		switch {
		case r == 'D' && !inTime:
			total += num * 24 * 60
		case r == 'H' && inTime:
			total += num * 60
		case r == 'M' && inTime:
			total += num
		case r == 'S' && inTime:
			// below minute resolution
		default:
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		num, digits = 0, 0
	}

	if digits > 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return total, nil
}
