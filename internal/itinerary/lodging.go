package itinerary

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"tripsmith/internal/flight"
)

// CuratedLodging returns example lodging scaled to the trip budget, used
// until a lodging provider is integrated. Rates are derived so that lodging
// stays within roughly a third of the budget but never below a hostel floor.
func CuratedLodging(req TripPlanRequest, nights int) []LodgingOption {
	if nights < 1 {
		nights = 1
	}

	nightlyBudget := req.Budget * 0.35
	if nightlyBudget < 120 {
		nightlyBudget = 120
	}
	averageRate := nightlyBudget
	if perNight := req.Budget / float64(nights); perNight < averageRate {
		averageRate = perNight
	}

	hostelRate := averageRate * 0.6
	if hostelRate < 75 {
		hostelRate = 75
	}

	ecoScore := 0.85
	hostelScore := 0.65
	centerDist := 1.2
	hostelDist := 0.5

	boutiqueRefund := time.Now().UTC().Add(5 * 24 * time.Hour)
	hostelRefund := time.Now().UTC().Add(3 * 24 * time.Hour)

	return []LodgingOption{
		{
			ID:                  uuid.NewString(),
			Name:                "EcoStay Boutique Hotel",
			Address:             fmt.Sprintf("Central District, %s", req.Destination),
			NightlyRate:         roundRate(averageRate),
			Currency:            flight.DefaultCurrency,
			DistanceToCenterKm:  &centerDist,
			SustainabilityScore: &ecoScore,
			RefundableUntil:     &boutiqueRefund,
		},
		{
			ID:                  uuid.NewString(),
			Name:                "Riverside Hostel & Co-Work",
			Address:             fmt.Sprintf("Old Town, %s", req.Destination),
			NightlyRate:         roundRate(hostelRate),
			Currency:            flight.DefaultCurrency,
			DistanceToCenterKm:  &hostelDist,
			SustainabilityScore: &hostelScore,
			RefundableUntil:     &hostelRefund,
		},
	}
}

func roundRate(rate float64) float64 {
	return float64(int(rate*100+0.5)) / 100
}
