package flight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 {
	return &v
}

func deltaOffers() []RawFlightOffer {
	return []RawFlightOffer{
		{
			ID: "A", Carrier: "Delta", Origin: "JFK", Destination: "NRT",
			Departure: "2025-06-01T08:00", Arrival: "2025-06-01T20:00",
			Price: 900, Cabin: "economy", Currency: "USD",
		},
		{
			ID: "B", Carrier: "Delta", Origin: "JFK", Destination: "NRT",
			Departure: "2025-06-01T08:00", Arrival: "2025-06-01T20:00",
			Price: 1200, Cabin: "business", Currency: "USD", EmissionsKg: fptr(400),
		},
		{
			ID: "A", Carrier: "Delta", Origin: "JFK", Destination: "NRT",
			Departure: "2025-06-01T08:00", Arrival: "2025-06-01T20:00",
			Price: 850, Cabin: "economy", Currency: "USD", EmissionsKg: fptr(150),
		},
	}
}

func TestGroup_MergeDuplicateCabins(t *testing.T) {
	groups := Group(deltaOffers())

	require.Len(t, groups, 1)
	group := groups[0]

	require.Len(t, group.Cabins, 2)
	assert.Equal(t, "A-economy", group.Cabins[0].ID)
	assert.Equal(t, 850.0, group.Cabins[0].Price, "later offer with same id+cabin overwrites the earlier")
	assert.Equal(t, "B-business", group.Cabins[1].ID)
	assert.Equal(t, 1200.0, group.Cabins[1].Price)

	assert.Equal(t, 850.0, group.LowestPrice)
	require.NotNil(t, group.LowestEmissions)
	assert.Equal(t, 150.0, *group.LowestEmissions)
}

func TestGroup_SplitsByIdentityTuple(t *testing.T) {
	offers := []RawFlightOffer{
		{ID: "A", Carrier: "Delta", Origin: "JFK", Destination: "NRT",
			Departure: "2025-06-01T08:00", Arrival: "2025-06-01T20:00", Price: 900, Cabin: "economy"},
		{ID: "B", Carrier: "ANA", Origin: "JFK", Destination: "NRT",
			Departure: "2025-06-01T08:00", Arrival: "2025-06-01T20:00", Price: 950, Cabin: "economy"},
		{ID: "C", Carrier: "Delta", Origin: "JFK", Destination: "NRT",
			Departure: "2025-06-01T11:00", Arrival: "2025-06-01T23:00", Price: 700, Cabin: "economy"},
	}

	groups := Group(offers)

	require.Len(t, groups, 3, "carrier or schedule difference means a different group")
	assert.Equal(t, "Delta", groups[0].Carrier)
	assert.Equal(t, "ANA", groups[1].Carrier)
	assert.Equal(t, "2025-06-01T11:00", groups[2].Departure)
}

func TestGroup_Determinism(t *testing.T) {
	offers := append(deltaOffers(),
		RawFlightOffer{ID: "C", Carrier: "ANA", Origin: "JFK", Destination: "HND",
			Departure: "2025-06-02T09:00", Arrival: "2025-06-02T21:00", Price: 1100, Cabin: "premium economy"},
		RawFlightOffer{ID: "D", Carrier: "ANA", Origin: "JFK", Destination: "HND",
			Departure: "2025-06-02T09:00", Arrival: "2025-06-02T21:00", Price: 1100, Cabin: "economy"},
	)

	first := Group(offers)
	second := Group(offers)

	assert.Equal(t, first, second, "same input must produce identical groups and cabin order")
}

func TestGroup_CabinsSortedByPrice(t *testing.T) {
	offers := []RawFlightOffer{
		{ID: "1", Carrier: "KLM", Origin: "AMS", Destination: "SIN",
			Departure: "d", Arrival: "a", Price: 3100, Cabin: "first"},
		{ID: "2", Carrier: "KLM", Origin: "AMS", Destination: "SIN",
			Departure: "d", Arrival: "a", Price: 640, Cabin: "economy"},
		{ID: "3", Carrier: "KLM", Origin: "AMS", Destination: "SIN",
			Departure: "d", Arrival: "a", Price: 1450, Cabin: "business"},
		{ID: "4", Carrier: "KLM", Origin: "AMS", Destination: "SIN",
			Departure: "d", Arrival: "a", Price: 980, Cabin: "premium economy"},
	}

	groups := Group(offers)

	require.Len(t, groups, 1)
	cabins := groups[0].Cabins
	for i := 0; i+1 < len(cabins); i++ {
		assert.LessOrEqual(t, cabins[i].Price, cabins[i+1].Price)
	}
	assert.Equal(t, cabins[0].Price, groups[0].LowestPrice)
}

func TestGroup_PriceTiesKeepInputOrder(t *testing.T) {
	offers := []RawFlightOffer{
		{ID: "x", Carrier: "LH", Origin: "FRA", Destination: "ORD",
			Departure: "d", Arrival: "a", Price: 500, Cabin: "economy"},
		{ID: "y", Carrier: "LH", Origin: "FRA", Destination: "ORD",
			Departure: "d", Arrival: "a", Price: 500, Cabin: "premium economy"},
	}

	groups := Group(offers)

	require.Len(t, groups, 1)
	require.Len(t, groups[0].Cabins, 2)
	assert.Equal(t, "x-economy", groups[0].Cabins[0].ID)
	assert.Equal(t, "y-premium economy", groups[0].Cabins[1].ID)
}

func TestGroup_LowestEmissionsAbsentWhenNoData(t *testing.T) {
	offers := []RawFlightOffer{
		{ID: "1", Carrier: "UA", Origin: "SFO", Destination: "EWR",
			Departure: "d", Arrival: "a", Price: 300, Cabin: "economy"},
		{ID: "2", Carrier: "UA", Origin: "SFO", Destination: "EWR",
			Departure: "d", Arrival: "a", Price: 700, Cabin: "business"},
	}

	groups := Group(offers)

	require.Len(t, groups, 1)
	assert.Nil(t, groups[0].LowestEmissions, "no emissions data means absent, not zero")
}

func TestGroup_ZeroEmissionsIsNotAbsent(t *testing.T) {
	offers := []RawFlightOffer{
		{ID: "1", Carrier: "UA", Origin: "SFO", Destination: "EWR",
			Departure: "d", Arrival: "a", Price: 300, Cabin: "economy", EmissionsKg: fptr(0)},
	}

	groups := Group(offers)

	require.Len(t, groups, 1)
	require.NotNil(t, groups[0].LowestEmissions)
	assert.Equal(t, 0.0, *groups[0].LowestEmissions)
}

func TestGroup_MalformedOffersFormDegenerateGroups(t *testing.T) {
	offers := []RawFlightOffer{
		{ID: "ok", Carrier: "Delta", Origin: "JFK", Destination: "NRT",
			Departure: "d", Arrival: "a", Price: 900, Cabin: "economy"},
		{ID: "broken", Price: 120, Cabin: "economy"},
	}

	groups := Group(offers)

	// the malformed offer is not rejected, it keys its own group
	require.Len(t, groups, 2)
	assert.Equal(t, "||||", groups[1].GroupID)
	assert.Equal(t, 120.0, groups[1].LowestPrice)
}

func TestGroup_EmptyInput(t *testing.T) {
	assert.Empty(t, Group(nil))
	assert.Empty(t, Group([]RawFlightOffer{}))
}

func TestNormalizeOffer(t *testing.T) {
	offer := NormalizeOffer(RawFlightOffer{ID: "1", Cabin: "Premium Economy"})
	assert.Equal(t, "premium economy", offer.Cabin)
	assert.Equal(t, "USD", offer.Currency)

	offer = NormalizeOffer(RawFlightOffer{ID: "2", Currency: "JPY"})
	assert.Equal(t, "economy", offer.Cabin, "missing cabin defaults to economy")
	assert.Equal(t, "JPY", offer.Currency)
}
