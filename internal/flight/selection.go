package flight

import "strings"

// ItineraryKey identifies one itinerary by destination and date range.
// Selections never carry across itineraries.
func ItineraryKey(destination, startDate, endDate string) string {
	return strings.Join([]string{destination, startDate, endDate}, groupKeyDelimiter)
}

// SelectionState tracks the user-driven cabin choice for one itinerary.
// SelectedCabinID is provisional; ConfirmedCabinID is the durable choice that
// downstream cost and emissions totals read from.
type SelectionState struct {
	ItineraryKey     string `json:"itinerary_key"`
	ExpandedGroupID  string `json:"expanded_group_id,omitempty"`
	SelectedCabinID  string `json:"selected_cabin_id,omitempty"`
	ConfirmedCabinID string `json:"confirmed_cabin_id,omitempty"`
}

// SyncItinerary resets all selection state when the itinerary identity
// changes. Returns true when a reset happened.
func (s *SelectionState) SyncItinerary(key string) bool {
	if s.ItineraryKey == key {
		return false
	}
	s.ItineraryKey = key
	s.ExpandedGroupID = ""
	s.SelectedCabinID = ""
	s.ConfirmedCabinID = ""
	return true
}

// ToggleExpand opens the given group and closes any other; expanding the
// already-open group collapses it. Single-selection, not a set.
func (s *SelectionState) ToggleExpand(groupID string) {
	if s.ExpandedGroupID == groupID {
		s.ExpandedGroupID = ""
		return
	}
	s.ExpandedGroupID = groupID
}

// Select highlights a cabin without committing it. The confirmed choice is
// untouched.
func (s *SelectionState) Select(cabinID string) {
	s.SelectedCabinID = cabinID
}

// Confirm commits the current provisional selection. A no-op when nothing is
// selected.
func (s *SelectionState) Confirm() {
	if s.SelectedCabinID == "" {
		return
	}
	s.ConfirmedCabinID = s.SelectedCabinID
}
