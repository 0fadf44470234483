package handlers

import (
	"net/http"
	"strconv"

	"dossier-ai/internal/indexer"
	"dossier-ai/internal/storage"
)

// RebuildHandler triggers a full index rebuild.
type RebuildHandler struct {
	pipeline *indexer.Pipeline
}

// NewRebuildHandler creates a new RebuildHandler.
func NewRebuildHandler(pipeline *indexer.Pipeline) *RebuildHandler {
	return &RebuildHandler{pipeline: pipeline}
}

// RebuildResponse reports the outcome of a rebuild.
type RebuildResponse struct {
	FilesProcessed int    `json:"files_processed"`
	FilesSkipped   int    `json:"files_skipped"`
	ChunksIndexed  int    `json:"chunks_indexed"`
	DurationMs     int64  `json:"duration_ms"`
	Status         string `json:"status"`
}

func (h *RebuildHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.pipeline.Rebuild(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to rebuild index")
		return
	}

	writeJSON(ctx, w, http.StatusOK, RebuildResponse{
		FilesProcessed: result.FilesProcessed,
		FilesSkipped:   result.FilesSkipped,
		ChunksIndexed:  result.ChunksIndexed,
		DurationMs:     result.Duration.Milliseconds(),
		Status:         "ok",
	})
}

// RebuildHistoryHandler lists recent rebuild runs.
type RebuildHistoryHandler struct {
	history storage.RebuildStore
}

// NewRebuildHistoryHandler creates a new RebuildHistoryHandler.
func NewRebuildHistoryHandler(history storage.RebuildStore) *RebuildHistoryHandler {
	return &RebuildHistoryHandler{history: history}
}

// RebuildHistoryResponse wraps the recent rebuild runs.
type RebuildHistoryResponse struct {
	Runs []storage.RebuildRun `json:"runs"`
}

func (h *RebuildHistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	runs, err := h.history.ListRecent(ctx, limit)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to list rebuild runs")
		return
	}
	if runs == nil {
		runs = []storage.RebuildRun{}
	}

	writeJSON(ctx, w, http.StatusOK, RebuildHistoryResponse{Runs: runs})
}
