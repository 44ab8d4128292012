package main

import (
	"context"
	"fmt"
	"time"

	"github.com/brooffline/server/internal/config"
	"github.com/brooffline/server/internal/logger"
	"github.com/brooffline/server/internal/watcher"
	"github.com/gin-gonic/gin"
)

// upper bound for a watcher-triggered index rebuild
const watcherReloadTimeout = 10 * time.Minute

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	services, err := InitializeServices(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	logger.Info("document index ready",
		"backend", cfg.IndexBackend,
		"chunks", services.Index.Len(),
	)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	server := &Server{
		config:   cfg,
		services: services,
		router:   router,
	}

	// optional: rebuild the index automatically when the docs directory changes
	if cfg.WatchDocs {
		docsWatcher, err := watcher.New(cfg.DocsDir, server.reloadFromWatcher)
		if err != nil {
			// watcher failure never takes the server down
			logger.ErrorErr(err, "failed to start docs watcher, continuing without auto-reload")
		} else {
			server.docsWatcher = docsWatcher
		}
	}

	if err := RegisterRoutes(router, server); err != nil {
		services.Index.Close()
		return nil, err
	}

	return server, nil
}

// reload callback for the docs watcher
func (s *Server) reloadFromWatcher() {
	ctx, cancel := context.WithTimeout(context.Background(), watcherReloadTimeout)
	defer cancel()

	stats, err := s.services.Index.Reload(ctx)
	if err != nil {
		logger.ErrorErr(err, "watcher-triggered reload failed")
		return
	}

	logger.Info("docs reloaded after filesystem change",
		"documents", stats.Documents,
		"chunks", stats.Chunks,
		"duration", stats.Duration,
	)
}
