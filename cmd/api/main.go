package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/avelasco/acorde/internal/adapters/lingua"
	neo4jadapter "github.com/avelasco/acorde/internal/adapters/neo4j"
	"github.com/avelasco/acorde/internal/adapters/ollama"
	"github.com/avelasco/acorde/internal/adapters/rest"
	"github.com/avelasco/acorde/internal/config"
	"github.com/avelasco/acorde/internal/core/services"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuration", zap.Error(err))
	}

	// Driven adapters: the LLM (explanations + query embeddings), the track
	// graph, and the language classifier.
	llm := ollama.NewClient(cfg.Ollama.Host, cfg.Ollama.ChatModel, cfg.Ollama.EmbedModel, cfg.Ollama.Timeout)

	graph, err := neo4jadapter.NewAdapter(cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password, cfg.Neo4j.Database, llm)
	if err != nil {
		logger.Fatal("neo4j", zap.Error(err))
	}
	defer func() {
		if err := graph.Close(context.Background()); err != nil {
			logger.Warn("neo4j close", zap.Error(err))
		}
	}()

	detector := lingua.NewDetector()

	// Core pipeline, then the driving HTTP adapter.
	svc := services.NewRecommender(graph, llm, detector, logger)
	handler := rest.NewHandler(svc, graph, logger)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderLimit,
	}

	logger.Info("acorde API listening", zap.String("addr", cfg.Server.Addr))

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Fatal("server", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}
}
