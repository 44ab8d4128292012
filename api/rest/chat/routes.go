package chat

import (
	"github.com/brooffline/server/internal/agent"
	"github.com/gin-gonic/gin"
)

// registers the chat route, optionally behind a rate limiter
func RegisterRoutes(router *gin.Engine, agentClient *agent.Agent, middleware ...gin.HandlerFunc) {
	handlers := append([]gin.HandlerFunc{}, middleware...)
	handlers = append(handlers, Handler(agentClient))

	router.POST("/chat", handlers...)
}
