package llm

import "fmt"

// combines an Embedder and TextGenerator into a single LLM
type CompositeLLM struct {
	TextGenerator
	Embedder
}

// creates a new LLM with explicit configuration
func NewLLMWithConfig(config *Config) (LLM, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	switch config.Provider {
	case ProviderOllama:
		client := newOllamaClient(config.BaseURL, config.RequestTimeout)

		return &CompositeLLM{
			TextGenerator: NewOllamaGenerator(client, config.GeneratorModel),
			Embedder:      NewOllamaEmbedder(client, config.EmbedderModel),
		}, nil

	case ProviderOpenAI:
		client := newOpenAIClient(config)

		return &CompositeLLM{
			TextGenerator: NewOpenAIGenerator(client, config.GeneratorModel),
			Embedder:      NewOpenAIEmbedder(client, config.EmbedderModel),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s", config.Provider)
	}
}
