package tracelog

import (
	"context"
	"sort"
	"sync"
)

// InMemoryStore is a process-local Store keeping per-trace event slices.
// Suitable for tests and local development; swap for a durable backend
// (e.g. the mongo subpackage) in production.
//
// Concurrency: protected by RWMutex. Within one trace the executor issues
// writes sequentially, so append order matches lifecycle order.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[string][]Event // traceID -> ordered events
}

// NewInMemoryStore creates an empty in-memory trace store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[string][]Event)}
}

// Append stores a copy of ev under its trace id.
func (s *InMemoryStore) Append(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[ev.TraceID] = append(s.events[ev.TraceID], ev)
	return nil
}

// ListByTrace returns the events of one trace sorted by timestamp ascending.
// Ties keep insertion order.
func (s *InMemoryStore) ListByTrace(_ context.Context, traceID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := s.events[traceID]
	out := make([]Event, len(src))
	copy(out, src)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}
