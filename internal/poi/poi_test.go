package poi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupe_CaseInsensitiveKeepsFirst(t *testing.T) {
	pois := []PointOfInterest{
		{Name: "Senso-ji Temple", Category: "historic"},
		{Name: "senso-ji temple", Category: "religion"},
		{Name: "Ueno Park", Category: "outdoor"},
		{Name: " Ueno Park ", Category: "park"},
	}

	result := Dedupe(pois)

	require.Len(t, result, 2)
	assert.Equal(t, "Senso-ji Temple", result[0].Name)
	assert.Equal(t, "historic", result[0].Category, "first occurrence wins")
	assert.Equal(t, "Ueno Park", result[1].Name)
}

func TestDedupe_DropsUnnamed(t *testing.T) {
	result := Dedupe([]PointOfInterest{{Name: ""}, {Name: "  "}, {Name: "Shibuya Crossing"}})
	require.Len(t, result, 1)
	assert.Equal(t, "Shibuya Crossing", result[0].Name)
}

func TestCategorize_StableOrder(t *testing.T) {
	pois := []PointOfInterest{
		{Name: "A", Category: "historic"},
		{Name: "B", Category: "outdoor"},
		{Name: "C", Category: "historic"},
		{Name: "D", Category: ""},
	}

	first := Categorize(pois)
	second := Categorize(pois)

	require.Len(t, first, 3)
	assert.Equal(t, "historic", first[0].Category)
	assert.Equal(t, []PointOfInterest{
		{Name: "A", Category: "historic"},
		{Name: "C", Category: "historic"},
	}, first[0].Items)
	assert.Equal(t, "outdoor", first[1].Category)
	assert.Equal(t, "attraction", first[2].Category, "empty category defaults")

	assert.Equal(t, first, second)
}

func TestFallback(t *testing.T) {
	pois := Fallback("Porto")
	require.Len(t, pois, 3)
	assert.Equal(t, "Porto Old Town", pois[0].Name)
}
