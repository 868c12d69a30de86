package flight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tripsmith/pkg/cache"
)

// SelectionStore keeps per-user cabin selection state in the cache so it
// survives page loads but not itinerary changes.
type SelectionStore struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewSelectionStore(c cache.Cache, ttl time.Duration) *SelectionStore {
	return &SelectionStore{cache: c, ttl: ttl}
}

func selectionKey(userID string) string {
	return fmt.Sprintf("flight:selection:%s", userID)
}

// Load returns the stored state for the user, synced to the given itinerary.
// A missing or corrupt entry yields a fresh state.
func (s *SelectionStore) Load(ctx context.Context, userID, itineraryKey string) (*SelectionState, error) {
	state := &SelectionState{ItineraryKey: itineraryKey}

	cached, err := s.cache.Get(ctx, selectionKey(userID))
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return state, nil
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(cached), state); err != nil {
		return &SelectionState{ItineraryKey: itineraryKey}, nil
	}

	state.SyncItinerary(itineraryKey)
	return state, nil
}

func (s *SelectionStore) Save(ctx context.Context, userID string, state *SelectionState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal selection state: %w", err)
	}
	return s.cache.Set(ctx, selectionKey(userID), string(payload), s.ttl)
}

// Mutate loads the state for the user, applies fn and saves the result.
// Concurrent writers follow last-completed-write-wins.
func (s *SelectionStore) Mutate(ctx context.Context, userID, itineraryKey string, fn func(*SelectionState)) (*SelectionState, error) {
	state, err := s.Load(ctx, userID, itineraryKey)
	if err != nil {
		return nil, err
	}
	fn(state)
	if err := s.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return state, nil
}
