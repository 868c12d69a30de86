package prefs

// PreferenceType separates what a traveler wants for one trip from what they
// always want
type PreferenceType string

const (
	TypeTripSpecific PreferenceType = "trip_specific"
	TypeLongTerm     PreferenceType = "long_term"
)

// PromotionFrequency is how often a trip-specific preference must recur
// before it is treated as a long-term one
const PromotionFrequency = 3

type Preference struct {
	ID            int64          `json:"id,omitempty"`
	UserID        string         `json:"user_id"`
	TripID        *string        `json:"trip_id,omitempty"`
	Type          PreferenceType `json:"preference_type"`
	Category      string         `json:"preference_category"`
	Value         string         `json:"preference_value"`
	Frequency     int            `json:"frequency"`
	Confidence    float64        `json:"confidence"`
	ExtractedFrom string         `json:"extracted_from_message,omitempty"`
}
