package index

import (
	"context"
	"time"
)

// a retrieved chunk with its similarity score
type SearchResult struct {
	ID           string
	DocName      string
	Path         string
	SectionTitle string
	Content      string
	Similarity   float32
}

// summarizes one index rebuild
type ReloadStats struct {
	Documents int
	Chunks    int
	Errors    int
	Duration  time.Duration
}

// a queryable document index with in-place rebuild
type Index interface {
	// nearest-neighbor search over the indexed chunks
	Query(ctx context.Context, queryText string, topK int) ([]SearchResult, error)

	// rebuilds the index from the docs directory and swaps it in atomically
	Reload(ctx context.Context) (*ReloadStats, error)

	// number of chunks currently indexed
	Len() int

	Close()
}
