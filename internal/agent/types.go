package agent

import (
	"context"

	"github.com/brooffline/server/internal/index"
	"github.com/brooffline/server/internal/llm"
)

// how a chat message should be answered
type Mode string

const (
	ModeAuto Mode = "auto" // detect from message content
	ModeLLM  Mode = "llm"  // free-form completion
	ModeDocs Mode = "docs" // retrieval-augmented answer over the document index
)

// interface for document retrieval
type Retriever interface {
	Query(ctx context.Context, queryText string, topK int) ([]index.SearchResult, error)
}

// routes chat messages to free-form completion or document Q&A
type Agent struct {
	retriever Retriever
	generator llm.TextGenerator
	keywords  []string
	topK      int
}

// tunables for mode detection and retrieval
type Options struct {
	DocsKeywords []string // lower-cased substrings that select docs mode
	TopK         int      // chunks retrieved per docs query
}

// a single chat turn
type ChatRequest struct {
	Message string
	Mode    Mode
}

// the answer plus retrieval metadata
type ChatResponse struct {
	Mode            Mode              `json:"mode"`
	Response        string            `json:"response"`
	Model           string            `json:"model"`
	ChunksRetrieved int               `json:"chunks_retrieved"`
	Sources         []SourceReference `json:"sources,omitempty"`
	InputTokens     int               `json:"-"`
	OutputTokens    int               `json:"-"`
}

// points at a document that grounded a docs-mode answer
type SourceReference struct {
	DocName      string `json:"doc_name"`
	SectionTitle string `json:"section_title,omitempty"`
	Path         string `json:"path"`
}
