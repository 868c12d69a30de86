package prefs

import (
	"context"
	"errors"
	"testing"
	"time"

	"tripsmith/pkg/cache"
)

func TestVersionedCache_PutReportsContentChanges(t *testing.T) {
	vc := NewVersionedCache(cache.NewMemoryCache(), time.Minute)
	ctx := context.Background()

	changed, err := vc.Put(ctx, "prefs:summary:u1", "dietary:vegan")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !changed {
		t.Error("first write must report changed")
	}

	changed, err = vc.Put(ctx, "prefs:summary:u1", "dietary:vegan")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if changed {
		t.Error("identical content must not report changed")
	}

	changed, err = vc.Put(ctx, "prefs:summary:u1", "dietary:vegan, style:backpacking")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !changed {
		t.Error("new content must report changed")
	}
}

func TestVersionedCache_GetReturnsVersionedEntry(t *testing.T) {
	vc := NewVersionedCache(cache.NewMemoryCache(), time.Minute)
	ctx := context.Background()

	if _, err := vc.Put(ctx, "k", "v"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	entry, err := vc.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if entry.Value != "v" {
		t.Errorf("value = %q, want v", entry.Value)
	}
	if entry.Version != Version("v") {
		t.Errorf("version = %q, want content hash", entry.Version)
	}
}

func TestVersionedCache_Invalidate(t *testing.T) {
	vc := NewVersionedCache(cache.NewMemoryCache(), time.Minute)
	ctx := context.Background()

	if _, err := vc.Put(ctx, "k", "v"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := vc.Invalidate(ctx, "k"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, err := vc.Get(ctx, "k"); !errors.Is(err, cache.ErrNotFound) {
		t.Errorf("expected ErrNotFound after invalidation, got %v", err)
	}
}

func TestSummarizePreferences_Deterministic(t *testing.T) {
	a := SummarizePreferences([]Preference{
		{Category: "dietary", Value: "vegan"},
		{Category: "style", Value: "backpacking"},
	})
	b := SummarizePreferences([]Preference{
		{Category: "style", Value: "backpacking"},
		{Category: "dietary", Value: "vegan"},
	})
	if a != b {
		t.Errorf("summary must not depend on input order: %q vs %q", a, b)
	}
	if a != "dietary:vegan, style:backpacking" {
		t.Errorf("summary = %q", a)
	}
}
