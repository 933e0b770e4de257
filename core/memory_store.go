package core

import (
	"context"
	"time"
)

// MemoryRecord is one persisted key takeaway from a prior interaction.
type MemoryRecord struct {
	ID        string         // Unique record id
	UserID    string         // Owning user
	TraceID   string         // Agent run that produced the record
	Content   string         // Free-text key takeaway
	Metadata  map[string]any // Optional producer-provided metadata
	CreatedAt time.Time      // UTC creation time
}

// MemoryStore defines persistence + retrieval for per-user long-term memory.
// Recall returns a best-effort textual digest of records relevant to the
// query; an empty digest means "nothing relevant", not an error.
// Implementations can back recall with embeddings, keywords or any heuristic.
type MemoryStore interface {
	Recall(ctx context.Context, userID, query string) (string, error)
	Save(ctx context.Context, rec MemoryRecord) error
}
