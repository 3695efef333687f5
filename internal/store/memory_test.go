package store

import (
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreGetSave(t *testing.T) {
	s := NewMemoryStore[string, float64](10, time.Hour)

	if _, err := s.Get("a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	s.Save("a", 1.5)
	got, err := s.Get("a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1.5 {
		t.Errorf("expected 1.5, got %v", got)
	}

	s.Save("a", 2.5)
	if got, _ := s.Get("a"); got != 2.5 {
		t.Errorf("expected overwrite to 2.5, got %v", got)
	}

	stats := s.Stats()
	if stats.Entries != 1 || stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestMemoryStoreEvictsLeastRecentlyUsed(t *testing.T) {
	s := NewMemoryStore[int, int](2, 0)

	s.Save(1, 1)
	s.Save(2, 2)
	// Touch 1 so 2 becomes the eviction candidate.
	if _, err := s.Get(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Save(3, 3)

	if _, err := s.Get(2); !errors.Is(err, ErrNotFound) {
		t.Error("expected key 2 to be evicted")
	}
	if _, err := s.Get(1); err != nil {
		t.Error("expected key 1 to survive")
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", s.Len())
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore[string, int](0, time.Minute)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Save("old", 1)
	now = now.Add(45 * time.Second)
	s.Save("new", 2)

	now = now.Add(30 * time.Second)
	if _, err := s.Get("old"); !errors.Is(err, ErrNotFound) {
		t.Error("expected old entry to be expired")
	}

	now = now.Add(time.Minute)
	if removed := s.Sweep(); removed != 1 {
		t.Errorf("expected sweep to remove 1 entry, got %d", removed)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d entries", s.Len())
	}
}

func TestMemoryStoreUnlimited(t *testing.T) {
	s := NewMemoryStore[int, int](0, 0)
	for i := 0; i < 5000; i++ {
		s.Save(i, i)
	}
	if s.Len() != 5000 {
		t.Fatalf("expected 5000 entries, got %d", s.Len())
	}
	if got, err := s.Get(0); err != nil || got != 0 {
		t.Errorf("expected oldest entry to survive, got %v, %v", got, err)
	}
	if removed := s.Sweep(); removed != 0 {
		t.Errorf("expected no expiry without max age, got %d", removed)
	}
}

func TestMemoryStoreGetDropsExpired(t *testing.T) {
	s := NewMemoryStore[string, int](10, time.Minute)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Save("a", 1)
	now = now.Add(2 * time.Minute)
	if _, err := s.Get("a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected expired entry to be removed, got %d entries", s.Len())
	}
	if stats := s.Stats(); stats.Misses != 1 || stats.Hits != 0 {
		t.Errorf("unexpected stats %+v", stats)
	}
}
