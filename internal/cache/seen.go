// Package cache remembers recently seen keys so at-least-once deliveries can
// be processed once.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// SeenSet is a bounded set of keys with a TTL. When full, the least recently
// marked key is evicted.
type SeenSet struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	now     func() time.Time
	items   map[string]*list.Element
	lru     *list.List
}

type seenItem struct {
	key       string
	expiresAt time.Time
}

// NewSeenSet creates a set holding at most maxSize keys for ttl each. A nil
// clock uses time.Now.
func NewSeenSet(maxSize int, ttl time.Duration, now func() time.Time) *SeenSet {
	if maxSize < 1 {
		maxSize = 1
	}
	if now == nil {
		now = time.Now
	}
	return &SeenSet{
		maxSize: maxSize,
		ttl:     ttl,
		now:     now,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

// MarkSeen records key and reports whether this is the first time it was seen
// within the TTL.
func (s *SeenSet) MarkSeen(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if elem, ok := s.items[key]; ok {
		item := elem.Value.(*seenItem)
		if now.Before(item.expiresAt) {
			s.lru.MoveToFront(elem)
			return false
		}
		s.removeElement(elem)
	}

	elem := s.lru.PushFront(&seenItem{key: key, expiresAt: now.Add(s.ttl)})
	s.items[key] = elem

	if s.lru.Len() > s.maxSize {
		if oldest := s.lru.Back(); oldest != nil {
			s.removeElement(oldest)
		}
	}
	return true
}

// Forget removes key so the next MarkSeen reports it as new.
func (s *SeenSet) Forget(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.items[key]; ok {
		s.removeElement(elem)
	}
}

func (s *SeenSet) removeElement(elem *list.Element) {
	item := elem.Value.(*seenItem)
	delete(s.items, item.key)
	s.lru.Remove(elem)
}

// CleanExpired removes all expired keys and returns how many were removed.
func (s *SeenSet) CleanExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var toRemove []*list.Element
	for elem := s.lru.Front(); elem != nil; elem = elem.Next() {
		if !now.Before(elem.Value.(*seenItem).expiresAt) {
			toRemove = append(toRemove, elem)
		}
	}
	for _, elem := range toRemove {
		s.removeElement(elem)
	}
	return len(toRemove)
}

func (s *SeenSet) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
