package itinerary

import (
	"time"

	"github.com/shopspring/decimal"

	"tripsmith/internal/flight"
	"tripsmith/internal/poi"
)

type TravelerPreferences struct {
	Likes                  []string `json:"likes,omitempty"`
	Dislikes               []string `json:"dislikes,omitempty"`
	DietaryRestrictions    []string `json:"dietary_restrictions,omitempty"`
	AccessibilityNeeds     []string `json:"accessibility_needs,omitempty"`
	SustainabilityPriority bool     `json:"sustainability_priority"`
}

type TravelerProfile struct {
	Name            string              `json:"name,omitempty"`
	Email           string              `json:"email,omitempty"`
	TravelStyle     string              `json:"travel_style,omitempty"` // luxury, backpacking, family
	LoyaltyPrograms []string            `json:"loyalty_programs,omitempty"`
	Preferences     TravelerPreferences `json:"preferences"`
}

type TripPlanRequest struct {
	Destination string           `json:"destination" binding:"required"`
	Origin      string           `json:"origin,omitempty"`
	StartDate   string           `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate     string           `json:"end_date" binding:"required"`   // YYYY-MM-DD
	Budget      float64          `json:"budget" binding:"required"`
	Travelers   int              `json:"travelers,omitempty"`
	Profile     *TravelerProfile `json:"profile,omitempty"`
}

type WeatherForecast struct {
	Date                     string  `json:"date"`
	Summary                  string  `json:"summary"`
	TemperatureHighC         float64 `json:"temperature_high_c"`
	TemperatureLowC          float64 `json:"temperature_low_c"`
	PrecipitationProbability float64 `json:"precipitation_probability"` // 0..1
}

type LodgingOption struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Address             string     `json:"address"`
	NightlyRate         float64    `json:"nightly_rate"`
	Currency            string     `json:"currency"`
	DistanceToCenterKm  *float64   `json:"distance_to_center_km,omitempty"`
	SustainabilityScore *float64   `json:"sustainability_score,omitempty"` // 0..1
	EmissionsKg         *float64   `json:"emissions_kg,omitempty"`         // per night
	BookingURL          string     `json:"booking_url,omitempty"`
	RefundableUntil     *time.Time `json:"refundable_until,omitempty"`
}

type ItineraryActivity struct {
	Time        string               `json:"time"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	POI         *poi.PointOfInterest `json:"poi,omitempty"`
}

type ItineraryDay struct {
	Date       string              `json:"date"`
	Theme      string              `json:"theme,omitempty"`
	Summary    string              `json:"summary"`
	Activities []ItineraryActivity `json:"activities"`
}

type BudgetBreakdown struct {
	Flights       decimal.Decimal `json:"flights"`
	Lodging       decimal.Decimal `json:"lodging"`
	Activities    decimal.Decimal `json:"activities"`
	Dining        decimal.Decimal `json:"dining"`
	Transit       decimal.Decimal `json:"transit"`
	EmergencyFund decimal.Decimal `json:"emergency_fund"`
	Currency      string          `json:"currency"`
}

func (b BudgetBreakdown) Total() decimal.Decimal {
	return b.Flights.
		Add(b.Lodging).
		Add(b.Activities).
		Add(b.Dining).
		Add(b.Transit).
		Add(b.EmergencyFund)
}

type SustainabilityScore struct {
	TotalPoints int      `json:"total_points"`
	Tier        string   `json:"tier"`
	Breakdown   []string `json:"breakdown"`
}

type TripPlanResponse struct {
	ID               string               `json:"id"`
	Destination      string               `json:"destination"`
	StartDate        string               `json:"start_date"`
	EndDate          string               `json:"end_date"`
	Travelers        int                  `json:"travelers"`
	Budget           float64              `json:"budget"`
	Currency         string               `json:"currency"`
	Weather          []WeatherForecast    `json:"weather"`
	FlightGroups     []flight.FlightGroup `json:"flight_groups"`
	Lodging          []LodgingOption      `json:"lodging"`
	PointsOfInterest []poi.CategoryGroup  `json:"points_of_interest"`
	Itinerary        []ItineraryDay       `json:"itinerary"`
	BudgetBreakdown  BudgetBreakdown      `json:"budget_breakdown"`
	Sustainability   SustainabilityScore  `json:"sustainability"`
}
