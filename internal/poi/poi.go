package poi

import "strings"

// PointOfInterest mirrors the places provider's record with explicit
// optional fields
type PointOfInterest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	EntranceFee *float64 `json:"entrance_fee,omitempty"`
}

// CategoryGroup is one section of the explore-more panel
type CategoryGroup struct {
	Category string            `json:"category"`
	Items    []PointOfInterest `json:"items"`
}

// Dedupe drops repeated POIs by case-insensitive name, keeping the first
// occurrence. Provider responses routinely repeat landmarks under slightly
// different categories.
func Dedupe(pois []PointOfInterest) []PointOfInterest {
	seen := make(map[string]struct{}, len(pois))
	result := make([]PointOfInterest, 0, len(pois))

	for _, p := range pois {
		key := strings.ToLower(strings.TrimSpace(p.Name))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, p)
	}
	return result
}

// Categorize buckets deduplicated POIs by category. Categories appear in
// first-seen order and items keep input order, so a fixed input renders the
// same panel every time. An empty category becomes "attraction".
func Categorize(pois []PointOfInterest) []CategoryGroup {
	index := make(map[string]int)
	groups := make([]CategoryGroup, 0)

	for _, p := range Dedupe(pois) {
		category := strings.ToLower(strings.TrimSpace(p.Category))
		if category == "" {
			category = "attraction"
			p.Category = category
		}

		i, exists := index[category]
		if !exists {
			i = len(groups)
			index[category] = i
			groups = append(groups, CategoryGroup{Category: category})
		}
		groups[i].Items = append(groups[i].Items, p)
	}
	return groups
}

// Fallback returns curated POIs when the places provider is unavailable
func Fallback(destination string) []PointOfInterest {
	return []PointOfInterest{
		{
			Name:        destination + " Old Town",
			Category:    "historic",
			Description: "Cultural heart with cafes and artisan shops.",
		},
		{
			Name:        destination + " Riverside Promenade",
			Category:    "outdoor",
			Description: "Relaxed river walk perfect for sunsets.",
		},
		{
			Name:        "Local Sustainability Hub",
			Category:    "experience",
			Description: "Community project showcasing eco-friendly living.",
		},
	}
}
