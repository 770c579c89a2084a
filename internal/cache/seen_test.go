package cache

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestSeenSetMarkSeen(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	s := NewSeenSet(10, time.Minute, clock.now)

	if !s.MarkSeen("a") {
		t.Error("first MarkSeen should report a new key")
	}
	if s.MarkSeen("a") {
		t.Error("second MarkSeen within TTL should report a duplicate")
	}

	clock.t = clock.t.Add(time.Minute)
	if !s.MarkSeen("a") {
		t.Error("MarkSeen after TTL should report a new key")
	}
}

func TestSeenSetEvictsLeastRecent(t *testing.T) {
	s := NewSeenSet(2, time.Hour, nil)

	s.MarkSeen("a")
	s.MarkSeen("b")
	s.MarkSeen("a") // a is now most recent
	s.MarkSeen("c") // evicts b

	if s.Size() != 2 {
		t.Fatalf("expected size 2, got %d", s.Size())
	}
	if s.MarkSeen("a") {
		t.Error("a should still be present")
	}
	if !s.MarkSeen("b") {
		t.Error("b should have been evicted")
	}
}

func TestSeenSetForget(t *testing.T) {
	s := NewSeenSet(10, time.Hour, nil)
	s.MarkSeen("a")
	s.Forget("a")
	if !s.MarkSeen("a") {
		t.Error("forgotten key should be new again")
	}
}

func TestSeenSetCleanExpired(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	s := NewSeenSet(10, time.Minute, clock.now)

	s.MarkSeen("a")
	clock.t = clock.t.Add(30 * time.Second)
	s.MarkSeen("b")
	clock.t = clock.t.Add(45 * time.Second)

	if removed := s.CleanExpired(); removed != 1 {
		t.Errorf("expected 1 expired key removed, got %d", removed)
	}
	if s.Size() != 1 {
		t.Errorf("expected size 1, got %d", s.Size())
	}
}
