package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort           = "5000"
	defaultDocsDir        = "./docs"
	defaultOllamaURL      = "http://localhost:11434"
	defaultLLMModel       = "qwen2:7b"
	defaultEmbedModel     = "nomic-embed-text"
	defaultTopK           = 4
	defaultRequestTimeout = 120 * time.Second

	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// messages containing any of these (lower-cased) select docs mode during
// auto-detection; the Vietnamese entry comes from the original deployment
var defaultDocsKeywords = []string{"tài liệu", "document", "file", "docs"}

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	cfg := &Config{
		Port:          getEnv("PORT", defaultPort),
		Environment:   getEnv("ENVIRONMENT", "development"),
		DocsDir:       getEnv("DOCS_DIR", defaultDocsDir),
		IndexBackend:  IndexBackend(getEnv("INDEX_BACKEND", string(BackendMemory))),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		LLMProvider:   getEnv("LLM_PROVIDER", ProviderOllama),
		OllamaURL:     getEnv("OLLAMA_URL", defaultOllamaURL),
		LLMModel:      getEnv("LLM_MODEL", defaultLLMModel),
		EmbedModel:    getEnv("EMBED_MODEL", defaultEmbedModel),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		ChatRateLimit: os.Getenv("CHAT_RATE_LIMIT"),
		TopK:          defaultTopK,
		WatchDocs:     getEnv("WATCH_DOCS", "false") == "true",
	}

	if topKStr := os.Getenv("RETRIEVAL_TOP_K"); topKStr != "" {
		val, err := strconv.Atoi(topKStr)
		if err != nil || val < 1 {
			return nil, fmt.Errorf("RETRIEVAL_TOP_K must be a positive integer, got %q", topKStr)
		}

		cfg.TopK = val
	}

	cfg.RequestTimeout = defaultRequestTimeout
	if timeoutStr := os.Getenv("REQUEST_TIMEOUT_SECONDS"); timeoutStr != "" {
		val, err := strconv.Atoi(timeoutStr)
		if err != nil || val < 1 {
			return nil, fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be a positive integer, got %q", timeoutStr)
		}

		cfg.RequestTimeout = time.Duration(val) * time.Second
	}

	cfg.DocsKeywords = defaultDocsKeywords
	if keywords := os.Getenv("DOCS_KEYWORDS"); keywords != "" {
		cfg.DocsKeywords = splitKeywords(keywords)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.IndexBackend {
	case BackendMemory:
		// no extra requirements
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required for the postgres index backend")
		}
	default:
		return fmt.Errorf("unsupported INDEX_BACKEND: %s", c.IndexBackend)
	}

	switch c.LLMProvider {
	case ProviderOllama:
		// local runtime, no credentials needed
	case ProviderOpenAI:
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable is required for the openai provider")
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER: %s", c.LLMProvider)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func splitKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))

	for _, part := range parts {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			keywords = append(keywords, part)
		}
	}

	return keywords
}
