package main

import (
	"context"
	"fmt"

	"github.com/brooffline/server/internal/agent"
	"github.com/brooffline/server/internal/config"
	"github.com/brooffline/server/internal/index"
	"github.com/brooffline/server/internal/llm"
)

// creates and configures all service clients
func InitializeServices(ctx context.Context, cfg *config.Config) (*Services, error) {
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
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	// load-or-create happens here: slow on first start with many documents
	docIndex, err := index.New(ctx, cfg, llmClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create document index: %w", err)
	}

	agentClient := agent.New(docIndex, llmClient, agent.Options{
		DocsKeywords: cfg.DocsKeywords,
		TopK:         cfg.TopK,
	})

	return &Services{
		Agent: agentClient,
		LLM:   llmClient,
		Index: docIndex,
	}, nil
}
