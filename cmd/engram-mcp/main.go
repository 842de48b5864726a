// Package main provides the entry point for the engram MCP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/raphaelgruber/engram-go/internal/config"
	"github.com/raphaelgruber/engram-go/internal/llm"
	"github.com/raphaelgruber/engram-go/internal/server"
	"github.com/raphaelgruber/engram-go/internal/service"
	"github.com/raphaelgruber/engram-go/internal/store"
	"github.com/raphaelgruber/engram-go/internal/tools"
)

const version = "0.1.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet; stderr is all we have.
		os.Stderr.WriteString("engram: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Setup logger (dual output: stderr text + file JSON)
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	logger.Info("engram starting",
		"version", version,
		"surrealdb_url", cfg.SurrealDBURL,
		"embed_model", cfg.EmbedModel,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Connect to the fact store
	st, err := store.NewSurreal(ctx, store.Config{
		URL:       cfg.SurrealDBURL,
		Namespace: cfg.SurrealDBNamespace,
		Database:  cfg.SurrealDBDatabase,
		Username:  cfg.SurrealDBUser,
		Password:  cfg.SurrealDBPass,
		AuthLevel: cfg.SurrealDBAuthLevel,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to store", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = st.Close(context.Background())
	}()

	// Create embedder
	embedder, err := llm.NewEmbedder(ctx, &cfg)
	if err != nil {
		logger.Error("failed to create embedder", "error", err)
		os.Exit(1)
	}
	logger.Info("embedder initialized", "model", embedder.Model(), "dimension", embedder.Dimension())

	// Extraction model is optional: without it the capture tool reports
	// nothing stored, the manual tools still work.
	var extractor llm.Extractor
	if model, err := llm.NewModel(&cfg); err != nil {
		logger.Warn("extraction model unavailable, capture disabled", "error", err)
	} else {
		extractor = model
		logger.Info("extraction model initialized", "model", model.Model())
	}

	memSvc := service.New(st, embedder, extractor, &cfg, logger, nil)

	// Create and setup server
	srv := server.New(version, logger)
	srv.Setup()

	// Register tools
	deps := &tools.Dependencies{
		Memory: memSvc,
		Logger: logger,
	}
	tools.RegisterAll(srv.MCPServer(), deps)
	logger.Info("tools registered", "count", 5)

	logger.Info("server ready, awaiting connections")

	// Run server (blocks until disconnect or context cancelled)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
