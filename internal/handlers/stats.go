package handlers

import (
	"net/http"
	"sort"

	"dossier-ai/internal/vectorstore"
)

// StatsHandler reports index contents: total chunks and per-source counts.
type StatsHandler struct {
	store      vectorstore.VectorStore
	collection string
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(store vectorstore.VectorStore, collection string) *StatsHandler {
	return &StatsHandler{store: store, collection: collection}
}

// SourceStats is the chunk count for one indexed document.
type SourceStats struct {
	Source string `json:"source"`
	Chunks int    `json:"chunks"`
}

// StatsResponse summarizes the index contents.
type StatsResponse struct {
	TotalChunks int           `json:"total_chunks"`
	Documents   int           `json:"documents"`
	Sources     []SourceStats `json:"sources"`
}

func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	chunks, err := h.store.Get(ctx, h.collection, nil)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to read index stats")
		return
	}

	counts := make(map[string]int)
	for _, chunk := range chunks {
		if chunk.Meta.Source == "" {
			continue
		}
		counts[chunk.Meta.Source]++
	}

	sources := make([]SourceStats, 0, len(counts))
	for source, n := range counts {
		sources = append(sources, SourceStats{Source: source, Chunks: n})
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Source < sources[j].Source })

	writeJSON(ctx, w, http.StatusOK, StatsResponse{
		TotalChunks: len(chunks),
		Documents:   len(sources),
		Sources:     sources,
	})
}
