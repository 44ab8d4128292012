package config

import "time"

// backend used for the document index
type IndexBackend string

const (
	BackendMemory   IndexBackend = "memory"
	BackendPostgres IndexBackend = "postgres"
)

// holds all server configuration loaded from the environment
type Config struct {
	Port        string
	Environment string

	// document index
	DocsDir      string
	IndexBackend IndexBackend
	DatabaseURL  string // postgres backend only
	TopK         int
	WatchDocs    bool

	// model runtime
	LLMProvider    string
	OllamaURL      string
	LLMModel       string
	EmbedModel     string
	OpenAIKey      string
	OpenAIBaseURL  string
	RequestTimeout time.Duration

	// chat behaviour
	DocsKeywords  []string
	ChatRateLimit string // ulule/limiter format, e.g. "30-M"
}

// CLI flags for the ingester
type Flags struct {
	Path  string
	Clear bool
}
