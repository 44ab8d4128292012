package index

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/brooffline/server/internal/chunker"
	"github.com/brooffline/server/internal/llm"
	"github.com/brooffline/server/internal/logger"
)

// an immutable view of the indexed chunks
// queries read whichever snapshot was current when they started
type snapshot struct {
	chunks     []chunker.Chunk
	embeddings [][]float32
	dimension  int
}

// brute-force cosine similarity index held in RAM
type MemoryIndex struct {
	docsDir  string
	embedder llm.Embedder

	snap     atomic.Pointer[snapshot]
	reloadMu sync.Mutex // serializes rebuilds, never blocks queries
}

// creates the in-memory index and performs the initial build
func NewMemoryIndex(ctx context.Context, docsDir string, embedder llm.Embedder) (*MemoryIndex, error) {
	idx := &MemoryIndex{
		docsDir:  docsDir,
		embedder: embedder,
	}

	idx.snap.Store(&snapshot{})

	if _, err := idx.Reload(ctx); err != nil {
		return nil, fmt.Errorf("initial index build failed: %w", err)
	}

	return idx, nil
}

func (idx *MemoryIndex) Reload(ctx context.Context) (*ReloadStats, error) {
	idx.reloadMu.Lock()
	defer idx.reloadMu.Unlock()

	chunks, embeddings, stats, err := buildEmbeddedChunks(ctx, idx.docsDir, idx.embedder)
	if err != nil {
		return nil, err
	}

	next := &snapshot{
		chunks:     chunks,
		embeddings: embeddings,
	}

	if len(embeddings) > 0 {
		next.dimension = len(embeddings[0])
	}

	idx.snap.Store(next)

	logger.Info("memory index rebuilt",
		"documents", stats.Documents,
		"chunks", stats.Chunks,
		"duration", stats.Duration,
	)

	return stats, nil
}

func (idx *MemoryIndex) Query(ctx context.Context, queryText string, topK int) ([]SearchResult, error) {
	snap := idx.snap.Load()

	if len(snap.chunks) == 0 {
		return nil, nil
	}

	embedding, err := idx.embedder.GenerateEmbedding(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	if len(embedding) != snap.dimension {
		return nil, fmt.Errorf("query embedding dimension %d does not match index dimension %d", len(embedding), snap.dimension)
	}

	results := make([]SearchResult, 0, len(snap.chunks))

	for i, chunk := range snap.chunks {
		results = append(results, SearchResult{
			ID:           fmt.Sprintf("%s#%d", chunk.Path, i),
			DocName:      chunk.DocName,
			Path:         chunk.Path,
			SectionTitle: chunk.SectionTitle,
			Content:      chunk.Content,
			Similarity:   cosineSimilarity(embedding, snap.embeddings[i]),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if topK > 0 && topK < len(results) {
		results = results[:topK]
	}

	return results, nil
}

func (idx *MemoryIndex) Len() int {
	return len(idx.snap.Load().chunks)
}

func (idx *MemoryIndex) Close() {}

// cosine similarity between two vectors, 1 means identical direction
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float32

	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}
