package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"dossier-ai/internal/config"
	"dossier-ai/internal/docstore"
	"dossier-ai/internal/http"
	"dossier-ai/internal/indexer"
	"dossier-ai/internal/llm"
	"dossier-ai/internal/rag"
	"dossier-ai/internal/reconcile"
	"dossier-ai/internal/storage"
	"dossier-ai/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		log.Fatalf("Invalid log level %q: %v", cfg.LogLevel, err)
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	rebuildRepo := storage.NewRebuildRepo(db)
	docs := docstore.New(cfg.DocsDir)

	ctx := context.Background()

	// Initialize Qdrant vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	// Ensure collection exists with correct vector size
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)

	chunker, err := indexer.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		log.Fatalf("Failed to create chunker: %v", err)
	}
	pipeline := indexer.NewPipeline(docs, chunker, embedder, vectorStore, cfg.QdrantCollection, rebuildRepo)
	reconciler := reconcile.New(docs, vectorStore, cfg.QdrantCollection)

	// Create LLM client (external service layer)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName, float32(cfg.Temperature))

	retriever := rag.NewRetriever(embedder, vectorStore, cfg.QdrantCollection, cfg.RetrievalK)
	engine := rag.NewEngine(retriever, llmClient)
	slog.Info("RAG engine initialized", "retrieval_k", cfg.RetrievalK)

	// Create router with dependencies
	router := http.NewRouter(&http.Deps{
		Engine:      engine,
		Pipeline:    pipeline,
		Reconciler:  reconciler,
		Docs:        docs,
		VectorStore: vectorStore,
		History:     rebuildRepo,
		Collection:  cfg.QdrantCollection,
	})

	// Report index drift at startup; a rebuild stays an explicit operator action.
	if state, err := reconciler.Status(ctx); err != nil {
		slog.Warn("Failed to compute initial sync state", "error", err)
	} else if state.NeedsRebuild {
		slog.Warn("Index out of sync with documents",
			"pending", len(state.Pending),
			"orphaned", len(state.Orphaned))
	} else {
		slog.Info("Index in sync", "documents", len(state.Synced), "chunks", state.TotalChunks)
	}

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
