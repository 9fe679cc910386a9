package usecase

import (
	"fmt"
	"time"

	"github.com/itnr/itnr-api/internal/domain"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int { return &i }

var testDeparture = time.Date(2025, 1, 20, 10, 15, 0, 0, time.UTC)

// makeLeg builds a leg of n segments flown by carrier, departing at dep.
func makeLeg(carrier string, firstNumber int, from, to string, dep time.Time, segments, minutes int) domain.OfferLeg {
	leg := domain.OfferLeg{DurationMinutes: minutes}
	per := minutes / segments
	stopover := []string{"DXB", "IST", "DOH"}
	at := dep
	prev := from
	for i := 0; i < segments; i++ {
		next := to
		if i < segments-1 {
			next = stopover[i%len(stopover)]
		}
		leg.Segments = append(leg.Segments, domain.Segment{
			CarrierCode: carrier,
			Number:      fmt.Sprintf("%d", firstNumber+i),
			From:        prev,
			To:          next,
			DepartureAt: at,
			ArrivalAt:   at.Add(time.Duration(per) * time.Minute),
			Duration:    per,
		})
		at = at.Add(time.Duration(per+60) * time.Minute)
		prev = next
	}
	return leg
}

// makeOffer builds a Paris-Bangkok round trip. stops applies to the outbound leg.
func makeOffer(id, carrier string, total float64, minutes, stops int, dep time.Time) domain.Offer {
	return domain.Offer{
		ID:         id,
		Provider:   "amadeus",
		GrandTotal: total,
		Currency:   "EUR",
		Legs: []domain.OfferLeg{
			makeLeg(carrier, 100, "CDG", "BKK", dep, stops+1, minutes),
			makeLeg(carrier, 900, "BKK", "CDG", dep.AddDate(0, 0, 14), 1, 700),
		},
	}
}

// makeOneWay builds a one-way offer.
func makeOneWay(id string, total float64, minutes int) domain.Offer {
	return domain.Offer{
		ID:         id,
		Provider:   "amadeus",
		GrandTotal: total,
		Currency:   "EUR",
		Legs: []domain.OfferLeg{
			makeLeg("AF", 100, "CDG", "BKK", testDeparture, 1, minutes),
		},
	}
}
