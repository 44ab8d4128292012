package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brooffline/server/internal/config"
	"github.com/brooffline/server/internal/logger"
)

func main() {
	logger.Info("starting brooffline server")

	// load configuration from environment
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	// create server with all dependencies (includes the initial index build)
	srv, err := NewServer(cfg)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	httpServer := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     srv.router,
		ReadTimeout: 15 * time.Second,
		// local generation can take the full model timeout, leave headroom
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// start server in goroutine
	go func() {
		logger.Info("server listening", "port", cfg.Port)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// start docs watcher with cancellable context
	watcherCtx, watcherCancel := context.WithCancel(context.Background())
	if srv.docsWatcher != nil {
		go srv.docsWatcher.Start(watcherCtx)
	}

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// stop docs watcher
	watcherCancel()

	if srv.docsWatcher != nil {
		srv.docsWatcher.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown
	}

	// graceful shutdown with 10 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	// close index (and its database pool, if any)
	srv.services.Index.Close()

	logger.Info("server stopped")
}
