package itinerary

import "github.com/shopspring/decimal"

var (
	activitiesShare = decimal.NewFromFloat(0.35)
	diningShare     = decimal.NewFromFloat(0.25)
	transitShare    = decimal.NewFromFloat(0.20)
	emergencyShare  = decimal.NewFromFloat(0.20)
)

// BuildBudgetBreakdown splits whatever remains after flights and lodging
// across activities, dining, transit and an emergency fund. The remainder
// never goes negative: an over-budget trip just gets zero discretionary
// allocations.
func BuildBudgetBreakdown(budget, flightCost, lodgingCost float64, currency string) BudgetBreakdown {
	total := decimal.NewFromFloat(budget)
	flights := decimal.NewFromFloat(flightCost)
	lodging := decimal.NewFromFloat(lodgingCost)

	remaining := total.Sub(flights).Sub(lodging)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return BudgetBreakdown{
		Flights:       flights.Round(2),
		Lodging:       lodging.Round(2),
		Activities:    remaining.Mul(activitiesShare).Round(2),
		Dining:        remaining.Mul(diningShare).Round(2),
		Transit:       remaining.Mul(transitShare).Round(2),
		EmergencyFund: remaining.Mul(emergencyShare).Round(2),
		Currency:      currency,
	}
}
