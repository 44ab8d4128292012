package main

import (
	"github.com/brooffline/server/internal/agent"
	"github.com/brooffline/server/internal/config"
	"github.com/brooffline/server/internal/index"
	"github.com/brooffline/server/internal/llm"
	"github.com/brooffline/server/internal/watcher"
	"github.com/gin-gonic/gin"
)

// holds all dependencies and state for the API server
type Server struct {
	config      *config.Config
	services    *Services
	docsWatcher *watcher.Watcher // nil unless WATCH_DOCS is enabled
	router      *gin.Engine
}

// holds all service clients (LLM, index, agent)
type Services struct {
	Agent *agent.Agent
	LLM   llm.LLM
	Index index.Index
}
