package handlers

import (
	"net/http"

	"dossier-ai/internal/vectorstore"
)

// HealthHandler reports service and index health.
type HealthHandler struct {
	store      vectorstore.VectorStore
	collection string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store vectorstore.VectorStore, collection string) *HealthHandler {
	return &HealthHandler{store: store, collection: collection}
}

// HealthResponse reports service health and index size.
type HealthResponse struct {
	Status      string `json:"status"`
	TotalChunks int    `json:"total_chunks"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	count, err := h.store.Count(ctx, h.collection)
	if err != nil {
		writeJSON(ctx, w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded"})
		return
	}

	writeJSON(ctx, w, http.StatusOK, HealthResponse{Status: "ok", TotalChunks: count})
}
