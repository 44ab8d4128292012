package chat

import "github.com/brooffline/server/internal/agent"

// Request represents the request body for a chat message
type Request struct {
	Message string `json:"message" binding:"required"`
	Mode    string `json:"mode"` // "auto" (default), "llm" or "docs"
}

// Response represents the chat response
type Response struct {
	Mode            string                  `json:"mode"` // mode actually used after auto-detection
	Response        string                  `json:"response"`
	Model           string                  `json:"model,omitempty"`
	ChunksRetrieved int                     `json:"chunks_retrieved,omitempty"`
	Sources         []agent.SourceReference `json:"sources,omitempty"`
}
