package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/agenthands/orderbot/internal/config"
	"github.com/agenthands/orderbot/internal/core"
	"github.com/agenthands/orderbot/internal/core/prompt"
	"github.com/agenthands/orderbot/internal/llm"
	"github.com/agenthands/orderbot/internal/logger"
	"github.com/agenthands/orderbot/internal/server"
)

func main() {
	initIndex := flag.Bool("init-index", false, "create the Memgraph vector indices before serving")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	lg, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		lg.Fatal("failed to initialize LLM client", zap.Error(err))
	}
	if c, ok := llmClient.(io.Closer); ok {
		defer c.Close()
	}

	embedder, err := llm.NewEmbedder(ctx, cfg.Embedding)
	if err != nil {
		lg.Fatal("failed to initialize embedder", zap.Error(err))
	}
	if c, ok := embedder.(io.Closer); ok {
		defer c.Close()
	}

	retriever, closeRetriever, err := buildRetriever(ctx, cfg, embedder, lg, *initIndex)
	if err != nil {
		lg.Fatal("failed to initialize retriever", zap.Error(err))
	}
	defer closeRetriever()

	orch := core.NewOrchestrator(retriever, llmClient,
		core.WithTopK(cfg.Retrieval.TopK),
		core.WithAssembler(prompt.NewAssembler(cfg.Prompts.Query)),
		core.WithRetrievalTimeout(cfg.Retrieval.Timeout()),
		core.WithCompletionTimeout(cfg.LLM.Timeout()),
		core.WithMaxQueryBytes(cfg.Limits.MaxQueryBytes),
		core.WithLogger(lg),
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: server.NewServer(orch, lg, cfg.Server.CORSOrigins).SetupRouter(),
	}

	go func() {
		lg.Info("starting server",
			zap.String("port", cfg.Server.Port),
			zap.String("llm_provider", cfg.LLM.Provider),
			zap.String("retrieval_backend", cfg.Retrieval.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("graceful shutdown failed", zap.Error(err))
	}
}
