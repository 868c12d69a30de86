package flight

import (
	"math"
	"sort"
)

// SortGroups orders groups for display on a cloned slice, never mutating the
// input. Groups without emissions data sort to the end when sorting by
// emissions. An unrecognized sort key falls back to ascending price.
func SortGroups(groups []FlightGroup, opts SortOptions) []FlightGroup {
	sorted := make([]FlightGroup, len(groups))
	copy(sorted, groups)

	key := opts.By
	if key != SortByPrice && key != SortByEmissions {
		key = SortByPrice
		opts.Order = OrderAsc
	}

	desc := opts.Order == OrderDesc

	switch key {
	case SortByEmissions:
		sort.SliceStable(sorted, func(i, j int) bool {
			a := emissionsOrInf(sorted[i])
			b := emissionsOrInf(sorted[j])
			if desc {
				return a > b
			}
			return a < b
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			if desc {
				return sorted[i].LowestPrice > sorted[j].LowestPrice
			}
			return sorted[i].LowestPrice < sorted[j].LowestPrice
		})
	}

	return sorted
}

func emissionsOrInf(group FlightGroup) float64 {
	if group.LowestEmissions == nil {
		return math.Inf(1)
	}
	return *group.LowestEmissions
}
