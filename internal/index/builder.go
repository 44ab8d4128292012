package index

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/brooffline/server/internal/chunker"
	"github.com/brooffline/server/internal/llm"
	"github.com/brooffline/server/internal/logger"
)

// chunks and embeds everything under docsDir
// the directory is created if missing; an empty directory yields an empty build
func buildEmbeddedChunks(ctx context.Context, docsDir string, embedder llm.Embedder) ([]chunker.Chunk, [][]float32, *ReloadStats, error) {
	start := time.Now()

	if err := os.MkdirAll(docsDir, 0o755); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create docs directory: %w", err)
	}

	chunks, chunkErrs := chunker.ChunkDocuments(docsDir)

	for _, err := range chunkErrs {
		logger.Warn("chunking error", "error", err)
	}

	stats := &ReloadStats{
		Documents: countDocuments(chunks),
		Chunks:    len(chunks),
		Errors:    len(chunkErrs),
	}

	if len(chunks) == 0 {
		stats.Duration = time.Since(start)
		return nil, nil, stats, nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	embeddings, err := embedder.GenerateEmbeddings(ctx, texts)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}

	stats.Duration = time.Since(start)

	return chunks, embeddings, stats, nil
}

func countDocuments(chunks []chunker.Chunk) int {
	seen := make(map[string]bool)

	for _, chunk := range chunks {
		seen[chunk.Path] = true
	}

	return len(seen)
}
