package handlers

import (
	"net/http"

	"dossier-ai/internal/reconcile"
)

// SyncHandler reports the current drift between documents and the index.
type SyncHandler struct {
	reconciler *reconcile.Reconciler
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(reconciler *reconcile.Reconciler) *SyncHandler {
	return &SyncHandler{reconciler: reconciler}
}

func (h *SyncHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := h.reconciler.Status(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to compute sync state")
		return
	}

	writeJSON(ctx, w, http.StatusOK, state)
}
