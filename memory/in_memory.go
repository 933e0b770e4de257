package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/brieflyai/cortex/core"
)

// DefaultDigestLimit caps how many records a recall digest aggregates.
const DefaultDigestLimit = 10

// InMemoryStore is a naive process-local core.MemoryStore. Recall performs a
// case-insensitive substring scan over a user's saved takeaways and renders
// the newest matches as a bulleted digest. Suitable only for tests and
// demos; swap for the mongo subpackage or a semantic index in production.
//
// Concurrency: protected by RWMutex.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string][]core.MemoryRecord // userID -> records, append order
	limit   int
}

// NewInMemoryStore creates a new in-memory memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[string][]core.MemoryRecord),
		limit:   DefaultDigestLimit,
	}
}

// Recall returns a bulleted digest of the user's records matching the query,
// newest first. An empty string signals "nothing relevant".
func (s *InMemoryStore) Recall(_ context.Context, userID, query string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.records[userID]
	if len(recs) == 0 {
		return "", nil
	}

	terms := queryTerms(query)
	var matched []string
	for i := len(recs) - 1; i >= 0 && len(matched) < s.limit; i-- {
		if matchesAny(recs[i].Content, terms) {
			matched = append(matched, recs[i].Content)
		}
	}
	if len(matched) == 0 {
		return "", nil
	}

	var sb strings.Builder
	for _, m := range matched {
		sb.WriteString("- ")
		sb.WriteString(m)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// Save appends a record to the user's memory. Missing ID and CreatedAt
// fields are filled in.
func (s *InMemoryStore) Save(_ context.Context, rec core.MemoryRecord) error {
	if rec.ID == "" {
		rec.ID = core.NewID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.UserID] = append(s.records[rec.UserID], rec)
	return nil
}

// queryTerms lowercases and splits the query into words usable for matching.
func queryTerms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// matchesAny reports whether content contains any of the terms. An empty
// term list matches everything, so a blank query recalls recent takeaways.
func matchesAny(content string, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	lc := strings.ToLower(content)
	for _, t := range terms {
		if strings.Contains(lc, t) {
			return true
		}
	}
	return false
}
