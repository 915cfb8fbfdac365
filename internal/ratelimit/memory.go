package ratelimit

import (
	"context"
	"sync"
	"time"
)

// memoryStore keeps counters in-process. Suitable for tests and single-node
// deployments; counters reset on restart.
type memoryStore struct {
	mu       sync.Mutex
	policy   Policy
	counters map[string]*memoryCounter
}

type memoryCounter struct {
	windowStart time.Time
	count       int
}

func newMemoryStore(policy Policy) *memoryStore {
	return &memoryStore{
		policy:   policy,
		counters: make(map[string]*memoryCounter),
	}
}

// Check implements Store
func (s *memoryStore) Check(ctx context.Context, identity string) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	counter, exists := s.counters[identity]
	if !exists {
		counter = &memoryCounter{windowStart: now}
		s.counters[identity] = counter
	}

	result, windowStart, count := s.policy.evaluate(counter.windowStart, counter.count, now)
	counter.windowStart = windowStart
	counter.count = count

	return result, nil
}

// Close implements Store
func (s *memoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters = nil
	return nil
}
