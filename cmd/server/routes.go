package main

import (
	"fmt"

	"github.com/brooffline/server/api/rest/chat"
	"github.com/brooffline/server/api/rest/docs"
	"github.com/brooffline/server/api/rest/health"
	"github.com/brooffline/server/api/rest/openapi"
	"github.com/brooffline/server/internal/ratelimit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
// /chat, /reload-docs and /openapi.json live at the root to preserve the
// wire contract of the original deployment
func RegisterRoutes(router *gin.Engine, server *Server) error {
	router.Use(cors.Default()) // allow all origins, as the frontends are local

	router.GET("/health", health.Handler)
	router.GET("/openapi.json", openapi.Handler)

	limitMiddleware, err := ratelimit.Middleware(server.config.ChatRateLimit)
	if err != nil {
		return fmt.Errorf("failed to build rate limiter: %w", err)
	}

	if limitMiddleware != nil {
		chat.RegisterRoutes(router, server.services.Agent, limitMiddleware)
	} else {
		chat.RegisterRoutes(router, server.services.Agent)
	}

	docs.RegisterRoutes(router, server.services.Index)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)
	}

	return nil
}
