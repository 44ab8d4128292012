package index

import (
	"context"
	"fmt"

	"github.com/brooffline/server/internal/config"
	"github.com/brooffline/server/internal/llm"
)

// creates the document index for the configured backend and performs the
// initial load-or-create
func New(ctx context.Context, cfg *config.Config, embedder llm.Embedder) (Index, error) {
	switch cfg.IndexBackend {
	case config.BackendMemory:
		return NewMemoryIndex(ctx, cfg.DocsDir, embedder)
	case config.BackendPostgres:
		return NewPostgresIndex(ctx, cfg.DatabaseURL, cfg.DocsDir, embedder, cfg.EmbedModel)
	default:
		return nil, fmt.Errorf("unsupported index backend: %s", cfg.IndexBackend)
	}
}
