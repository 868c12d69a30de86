package prefs

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tripsmith/pkg/cache"
)

// Entry is a cached value with an explicit content version. The version is a
// hash of the value, so "did this change" is a version comparison instead of
// comparing serialized blobs.
type Entry struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Version string `json:"version"`
}

type VersionedCache struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewVersionedCache(c cache.Cache, ttl time.Duration) *VersionedCache {
	return &VersionedCache{cache: c, ttl: ttl}
}

func Version(value string) string {
	hash := sha256.Sum256([]byte(value))
	return fmt.Sprintf("%x", hash[:16])
}

// Put stores value under key and reports whether the content actually
// changed. Writing identical content refreshes the TTL but reports false, so
// callers only recompute derived state on real changes. Concurrent writers
// race benignly: the last completed write wins.
func (v *VersionedCache) Put(ctx context.Context, key, value string) (bool, error) {
	version := Version(value)

	existing, err := v.Get(ctx, key)
	if err != nil && !errors.Is(err, cache.ErrNotFound) {
		return false, err
	}
	changed := err != nil || existing.Version != version

	payload, err := json.Marshal(Entry{Key: key, Value: value, Version: version})
	if err != nil {
		return false, fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	if err := v.cache.Set(ctx, key, string(payload), v.ttl); err != nil {
		return false, err
	}
	return changed, nil
}

func (v *VersionedCache) Get(ctx context.Context, key string) (Entry, error) {
	raw, err := v.cache.Get(ctx, key)
	if err != nil {
		return Entry{}, err
	}

	var entry Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return Entry{}, fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}
	return entry, nil
}

func (v *VersionedCache) Invalidate(ctx context.Context, key string) error {
	return v.cache.Del(ctx, key)
}
