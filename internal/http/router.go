package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"dossier-ai/internal/docstore"
	"dossier-ai/internal/handlers"
	"dossier-ai/internal/indexer"
	"dossier-ai/internal/rag"
	"dossier-ai/internal/reconcile"
	"dossier-ai/internal/storage"
	"dossier-ai/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine      *rag.Engine
	Pipeline    *indexer.Pipeline
	Reconciler  *reconcile.Reconciler
	Docs        *docstore.Store
	VectorStore vectorstore.VectorStore
	History     storage.RebuildStore
	Collection  string
}

// NewRouter creates the HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	askHandler := handlers.NewAskHandler(deps.Engine)
	syncHandler := handlers.NewSyncHandler(deps.Reconciler)
	rebuildHandler := handlers.NewRebuildHandler(deps.Pipeline)
	historyHandler := handlers.NewRebuildHistoryHandler(deps.History)
	documentsHandler := handlers.NewDocumentsHandler(deps.Docs)
	statsHandler := handlers.NewStatsHandler(deps.VectorStore, deps.Collection)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.Collection)

	r.Route("/api/v1", func(r chi.Router) {
		r.Method(http.MethodPost, "/ask", askHandler)
		r.Method(http.MethodGet, "/sync", syncHandler)
		r.Method(http.MethodPost, "/rebuild", rebuildHandler)
		r.Method(http.MethodGet, "/rebuilds", historyHandler)
		r.Get("/documents", documentsHandler.List)
		r.Post("/documents", documentsHandler.Upload)
		r.Delete("/documents/{name}", documentsHandler.Delete)
		r.Method(http.MethodGet, "/stats", statsHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
