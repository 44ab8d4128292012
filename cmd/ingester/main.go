package main

import (
	"context"

	"github.com/brooffline/server/internal/config"
	"github.com/brooffline/server/internal/index"
	"github.com/brooffline/server/internal/llm"
	"github.com/brooffline/server/internal/logger"
)

// pre-ingests a docs directory into the postgres index so the server can
// skip the initial embedding pass on first start
func main() {
	flags := config.ParseIngestFlags()

	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	if cfg.IndexBackend != config.BackendPostgres {
		logger.Fatal("the ingester requires INDEX_BACKEND=postgres; the memory backend builds its index at server start")
	}

	if flags.Path != "" {
		cfg.DocsDir = flags.Path
	}

	ctx := context.Background()

	llmClient, err := llm.NewLLMWithConfig(&llm.Config{
		Provider:       llm.Provider(cfg.LLMProvider),
		GeneratorModel: cfg.LLMModel,
		EmbedderModel:  cfg.EmbedModel,
		BaseURL:        cfg.OllamaURL,
		APIKey:         cfg.OpenAIKey,
		OpenAIBaseURL:  cfg.OpenAIBaseURL,
		RequestTimeout: cfg.RequestTimeout,
	})

	if err != nil {
		logger.Fatal("failed to create LLM client", "error", err)
	}

	logger.Info("starting ingestion", "path", cfg.DocsDir, "clear", flags.Clear)

	// load-or-create: a fresh database is populated here
	idx, err := index.NewPostgresIndex(ctx, cfg.DatabaseURL, cfg.DocsDir, llmClient, cfg.EmbedModel)
	if err != nil {
		logger.Fatal("failed to open postgres index", "error", err)
	}

	defer idx.Close()

	if flags.Clear {
		stats, err := idx.Reload(ctx)
		if err != nil {
			logger.Fatal("failed to rebuild index", "error", err)
		}

		logger.Info("index rebuilt",
			"documents", stats.Documents,
			"chunks", stats.Chunks,
			"errors", stats.Errors,
			"duration", stats.Duration,
		)

		return
	}

	logger.Info("ingestion complete", "chunks", idx.Len())
}
