package flight

import (
	"sort"
	"strings"
)

// NormalizeOffer applies the single ingestion-boundary normalization:
// cabin names are lower-cased and defaulted, currency is defaulted.
// Grouping and display both rely on this having happened exactly once.
func NormalizeOffer(offer RawFlightOffer) RawFlightOffer {
	cabin := strings.ToLower(strings.TrimSpace(offer.Cabin))
	if cabin == "" {
		cabin = DefaultCabin
	}
	offer.Cabin = cabin

	if offer.Currency == "" {
		offer.Currency = DefaultCurrency
	}
	return offer
}

func NormalizeOffers(offers []RawFlightOffer) []RawFlightOffer {
	normalized := make([]RawFlightOffer, len(offers))
	for i, offer := range offers {
		normalized[i] = NormalizeOffer(offer)
	}
	return normalized
}

// GroupKey joins the identity fields of an offer. Offers with the same key
// are cabin variants of the same flight.
func GroupKey(offer RawFlightOffer) string {
	return strings.Join([]string{
		offer.Carrier,
		offer.Origin,
		offer.Destination,
		offer.Departure,
		offer.Arrival,
	}, groupKeyDelimiter)
}

// Group merges normalized offers into one FlightGroup per unique
// carrier/origin/destination/departure/arrival tuple.
//
// Within a group, a repeated per-cabin id overwrites the earlier entry in
// place (last write wins, keeping the first-seen position). Cabins are then
// sorted ascending by price with a stable sort, so price ties keep their
// input order. LowestEmissions stays nil when no cabin reports emissions.
//
// Offers missing carrier/origin/destination are not rejected: they form
// their own degenerate group keyed on whatever fields are present.
//
// Group order follows first appearance in the input, so a fixed input
// always produces the same output.
func Group(offers []RawFlightOffer) []FlightGroup {
	type groupAccum struct {
		group      *FlightGroup
		cabinIndex map[string]int
	}

	accums := make(map[string]*groupAccum, len(offers))
	keyOrder := make([]string, 0, len(offers))

	for _, offer := range offers {
		key := GroupKey(offer)

		acc, exists := accums[key]
		if !exists {
			acc = &groupAccum{
				group: &FlightGroup{
					GroupID:     key,
					Carrier:     offer.Carrier,
					Origin:      offer.Origin,
					Destination: offer.Destination,
					Departure:   offer.Departure,
					Arrival:     offer.Arrival,
				},
				cabinIndex: make(map[string]int),
			}
			accums[key] = acc
			keyOrder = append(keyOrder, key)
		}

		option := FlightCabinOption{
			ID:          offer.ID + "-" + offer.Cabin,
			Cabin:       offer.Cabin,
			Price:       offer.Price,
			Currency:    offer.Currency,
			EmissionsKg: offer.EmissionsKg,
			EcoScore:    offer.EcoScore,
		}

		if idx, dup := acc.cabinIndex[option.ID]; dup {
			acc.group.Cabins[idx] = option
			continue
		}
		acc.cabinIndex[option.ID] = len(acc.group.Cabins)
		acc.group.Cabins = append(acc.group.Cabins, option)
	}

	groups := make([]FlightGroup, 0, len(keyOrder))
	for _, key := range keyOrder {
		g := accums[key].group

		sort.SliceStable(g.Cabins, func(i, j int) bool {
			return g.Cabins[i].Price < g.Cabins[j].Price
		})

		if len(g.Cabins) > 0 {
			g.LowestPrice = g.Cabins[0].Price
		}
		g.LowestEmissions = lowestEmissions(g.Cabins)

		groups = append(groups, *g)
	}
	return groups
}

func lowestEmissions(cabins []FlightCabinOption) *float64 {
	var lowest *float64
	for _, cabin := range cabins {
		if cabin.EmissionsKg == nil {
			continue
		}
		if lowest == nil || *cabin.EmissionsKg < *lowest {
			value := *cabin.EmissionsKg
			lowest = &value
		}
	}
	return lowest
}
