package ratelimit

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore is a sliding-window limiter for single-instance deployments.
type InMemoryStore struct {
	mu      sync.Mutex
	windows map[string][]time.Time
	now     func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		windows: make(map[string][]time.Time),
		now:     time.Now,
	}
}

func (s *InMemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-window)
	hits := s.windows[key]
	i := 0
	for ; i < len(hits); i++ {
		if hits[i].After(cutoff) {
			break
		}
	}
	hits = hits[i:]

	if len(hits) >= limit {
		s.windows[key] = hits
		return &Result{Allowed: false, Limit: limit, Remaining: 0, ResetAt: hits[0].Add(window)}, nil
	}

	hits = append(hits, now)
	s.windows[key] = hits
	return &Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - len(hits),
		ResetAt:   hits[0].Add(window),
	}, nil
}

// Reset forgets every hit for key.
func (s *InMemoryStore) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, key)
}
