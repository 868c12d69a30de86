package itinerary

import "fmt"

const (
	TierSeedling = "Seedling"
	TierSapling  = "Sapling"
	TierForest   = "Forest"
	TierCanopy   = "Canopy"
)

// CalculateSustainability awards points for choices that lower the trip's
// footprint and maps them to a tier. Only the first eco-certified lodging
// option scores, so a long lodging list cannot inflate the total.
func CalculateSustainability(req TripPlanRequest, lodging []LodgingOption) SustainabilityScore {
	points := 0
	breakdown := make([]string, 0, 4)

	if req.Profile != nil && req.Profile.Preferences.SustainabilityPriority {
		points += 20
		breakdown = append(breakdown, "Profile prioritizes sustainable choices (+20)")
	}

	if req.Travelers > 1 {
		points += 10
		breakdown = append(breakdown, "Group travel reduces per-person footprint (+10)")
	}

	for _, option := range lodging {
		if option.SustainabilityScore != nil && *option.SustainabilityScore > 0.8 {
			points += 15
			breakdown = append(breakdown, fmt.Sprintf("%s is eco-certified (+15)", option.Name))
			break
		}
	}

	if req.Budget <= 1500 {
		points += 5
		breakdown = append(breakdown, "Compact budget encourages mindful spending (+5)")
	}

	tier := TierSeedling
	switch {
	case points >= 60:
		tier = TierCanopy
	case points >= 40:
		tier = TierForest
	case points >= 25:
		tier = TierSapling
	}

	return SustainabilityScore{
		TotalPoints: points,
		Tier:        tier,
		Breakdown:   breakdown,
	}
}
