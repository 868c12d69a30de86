package flight

import "fmt"

// DefaultCreditThreshold hides near-zero credits caused by floating point
// noise between near-identical cabins
const DefaultCreditThreshold = 0.05

// Calculator computes carbon credits: the emissions saved by a cabin choice
// relative to the dirtiest cabin in the same flight group. Route-specific by
// construction, so long-haul routes are not penalized against a global
// baseline.
type Calculator struct {
	threshold float64
}

func NewCalculator(threshold float64) Calculator {
	if threshold <= 0 {
		threshold = DefaultCreditThreshold
	}
	return Calculator{threshold: threshold}
}

// CarbonCredit returns the full-precision credit for choosing the given cabin,
// or nil for "no credits": cabin emissions unknown, no emissions data in the
// group, first class (excluded by policy), or a credit below the display
// threshold.
func (c Calculator) CarbonCredit(group FlightGroup, cabin FlightCabinOption) *float64 {
	maxEmission := 0.0
	for _, option := range group.Cabins {
		if option.EmissionsKg != nil && *option.EmissionsKg > maxEmission {
			maxEmission = *option.EmissionsKg
		}
	}

	if cabin.EmissionsKg == nil || maxEmission <= 0 || cabin.Cabin == CabinFirst {
		return nil
	}

	rawCredit := maxEmission - *cabin.EmissionsKg
	if rawCredit < 0 {
		rawCredit = 0
	}
	if rawCredit <= c.threshold {
		return nil
	}
	return &rawCredit
}

// FormatCredit renders a credit for display, rounded to one decimal place.
// Arithmetic elsewhere keeps the full-precision value.
func FormatCredit(credit float64) string {
	return fmt.Sprintf("%.1f", credit)
}
