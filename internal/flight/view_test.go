package flight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func displayGroups() []FlightGroup {
	return []FlightGroup{
		{GroupID: "g1", LowestPrice: 900, LowestEmissions: fptr(320)},
		{GroupID: "g2", LowestPrice: 450},
		{GroupID: "g3", LowestPrice: 700, LowestEmissions: fptr(150)},
	}
}

func groupIDs(groups []FlightGroup) []string {
	ids := make([]string, len(groups))
	for i, g := range groups {
		ids[i] = g.GroupID
	}
	return ids
}

func TestSortGroups_PriceAscending(t *testing.T) {
	sorted := SortGroups(displayGroups(), SortOptions{By: SortByPrice, Order: OrderAsc})
	assert.Equal(t, []string{"g2", "g3", "g1"}, groupIDs(sorted))
}

func TestSortGroups_PriceDescending(t *testing.T) {
	sorted := SortGroups(displayGroups(), SortOptions{By: SortByPrice, Order: OrderDesc})
	assert.Equal(t, []string{"g1", "g3", "g2"}, groupIDs(sorted))
}

func TestSortGroups_MissingEmissionsSortLast(t *testing.T) {
	sorted := SortGroups(displayGroups(), SortOptions{By: SortByEmissions, Order: OrderAsc})
	assert.Equal(t, []string{"g3", "g1", "g2"}, groupIDs(sorted))
}

func TestSortGroups_UnknownKeyFallsBackToPriceAscending(t *testing.T) {
	sorted := SortGroups(displayGroups(), SortOptions{By: "duration", Order: OrderDesc})
	assert.Equal(t, []string{"g2", "g3", "g1"}, groupIDs(sorted))
}

func TestSortGroups_DoesNotMutateInput(t *testing.T) {
	input := displayGroups()
	_ = SortGroups(input, SortOptions{By: SortByPrice, Order: OrderDesc})
	assert.Equal(t, []string{"g1", "g2", "g3"}, groupIDs(input))
}

func TestSortGroups_StableOnEqualKeys(t *testing.T) {
	input := []FlightGroup{
		{GroupID: "a", LowestPrice: 500},
		{GroupID: "b", LowestPrice: 500},
		{GroupID: "c", LowestPrice: 500},
	}
	sorted := SortGroups(input, SortOptions{By: SortByPrice, Order: OrderAsc})
	require.Equal(t, []string{"a", "b", "c"}, groupIDs(sorted))
}
