package llm

import (
	"context"
	"time"
)

// represents different model runtimes
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
)

// generates free-form text completions
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (*CompletionResult, error)
	Model() string
}

// generates embeddings from text
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// combines text generation and embedding generation
type LLM interface {
	TextGenerator
	Embedder
}

// contains the completion text and usage metadata
type CompletionResult struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
}

// holds configuration for LLM initialization
type Config struct {
	Provider Provider

	// generator configuration
	GeneratorModel string // e.g., "qwen2:7b"

	// embedder configuration
	EmbedderModel string // e.g., "nomic-embed-text"

	// ollama provider
	BaseURL string // e.g., "http://localhost:11434"

	// openai provider
	APIKey        string
	OpenAIBaseURL string // optional, for OpenAI-compatible endpoints

	// total per-request timeout for the runtime
	RequestTimeout time.Duration
}
