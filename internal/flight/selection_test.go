package flight

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripsmith/pkg/cache"
)

func TestSelectionState_ExpandIsMutuallyExclusive(t *testing.T) {
	state := &SelectionState{ItineraryKey: "k"}

	state.ToggleExpand("g1")
	assert.Equal(t, "g1", state.ExpandedGroupID)

	state.ToggleExpand("g2")
	assert.Equal(t, "g2", state.ExpandedGroupID, "opening one group closes any other")

	state.ToggleExpand("g2")
	assert.Empty(t, state.ExpandedGroupID, "expanding the open group collapses it")
}

func TestSelectionState_SelectDoesNotConfirm(t *testing.T) {
	state := &SelectionState{ItineraryKey: "k"}

	state.Select("cabin-1")
	state.Confirm()
	state.Select("cabin-2")

	assert.Equal(t, "cabin-2", state.SelectedCabinID)
	assert.Equal(t, "cabin-1", state.ConfirmedCabinID,
		"a new provisional selection must not alter the confirmed choice")
}

func TestSelectionState_ConfirmWithoutSelectionIsNoop(t *testing.T) {
	state := &SelectionState{ItineraryKey: "k"}
	state.Confirm()
	assert.Empty(t, state.ConfirmedCabinID)
}

func TestSelectionState_ResetOnItineraryChange(t *testing.T) {
	keyA := ItineraryKey("Tokyo, Japan", "2025-06-01", "2025-06-08")
	keyB := ItineraryKey("Lisbon, Portugal", "2025-06-01", "2025-06-08")

	state := &SelectionState{ItineraryKey: keyA}
	state.ToggleExpand("g1")
	state.Select("cabin-1")
	state.Confirm()

	reset := state.SyncItinerary(keyB)

	assert.True(t, reset)
	assert.Empty(t, state.ExpandedGroupID)
	assert.Empty(t, state.SelectedCabinID)
	assert.Empty(t, state.ConfirmedCabinID, "stale confirmations must never carry across itineraries")

	assert.False(t, state.SyncItinerary(keyB), "same itinerary does not reset")
}

func TestSelectionStore_RoundTripAndReset(t *testing.T) {
	ctx := context.Background()
	store := NewSelectionStore(cache.NewMemoryCache(), time.Hour)

	keyA := ItineraryKey("Tokyo, Japan", "2025-06-01", "2025-06-08")
	state, err := store.Mutate(ctx, "user-1", keyA, func(s *SelectionState) {
		s.Select("cabin-1")
		s.Confirm()
	})
	require.NoError(t, err)
	assert.Equal(t, "cabin-1", state.ConfirmedCabinID)

	// same itinerary loads the confirmed choice back
	loaded, err := store.Load(ctx, "user-1", keyA)
	require.NoError(t, err)
	assert.Equal(t, "cabin-1", loaded.ConfirmedCabinID)

	// a different destination resets everything
	keyB := ItineraryKey("Lisbon, Portugal", "2025-06-01", "2025-06-08")
	loaded, err = store.Load(ctx, "user-1", keyB)
	require.NoError(t, err)
	assert.Empty(t, loaded.ConfirmedCabinID)
	assert.Empty(t, loaded.SelectedCabinID)

	// users are isolated
	other, err := store.Load(ctx, "user-2", keyA)
	require.NoError(t, err)
	assert.Empty(t, other.ConfirmedCabinID)
}
