package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dossier-ai/internal/contextutil"
	"dossier-ai/internal/docstore"
	"dossier-ai/internal/loader"
)

// maxUploadBytes bounds multipart uploads to 16 MiB.
const maxUploadBytes = 16 << 20

// DocumentsHandler manages the raw document collection.
type DocumentsHandler struct {
	docs *docstore.Store
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(docs *docstore.Store) *DocumentsHandler {
	return &DocumentsHandler{docs: docs}
}

// DocumentResponse describes one stored document.
type DocumentResponse struct {
	Name         string `json:"name"`
	OriginalName string `json:"original_name"`
}

// DocumentListResponse wraps the stored document list.
type DocumentListResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// List returns all stored documents.
func (h *DocumentsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	names, err := h.docs.List()
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to list documents")
		return
	}

	docs := make([]DocumentResponse, len(names))
	for i, name := range names {
		docs[i] = DocumentResponse{
			Name:         name,
			OriginalName: docstore.StripTimestamp(name),
		}
	}

	writeJSON(ctx, w, http.StatusOK, DocumentListResponse{Documents: docs})
}

// UploadResponse reports a stored upload.
type UploadResponse struct {
	Name string `json:"name"`
}

// Upload stores a multipart file upload. The index is not touched; the new
// document shows up as pending until the next rebuild.
func (h *DocumentsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		logger.WarnContext(ctx, "invalid multipart form", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	if !loader.Supported(header.Filename) {
		writeError(w, http.StatusBadRequest, "Unsupported file format (supported: txt, csv, html, md)")
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to read upload")
		return
	}

	name, err := h.docs.Save(header.Filename, content)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to store document")
		return
	}

	logger.InfoContext(ctx, "document uploaded", "name", name, "bytes", len(content))
	writeJSON(ctx, w, http.StatusCreated, UploadResponse{Name: name})
}

// Delete removes a stored document. Its indexed chunks stay until the next
// rebuild and are reported as orphaned by the sync endpoint.
func (h *DocumentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := chi.URLParam(r, "name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "Document name is required")
		return
	}

	if err := h.docs.Delete(name); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Document not found")
			return
		}
		handleServiceError(ctx, w, err, "Failed to delete document")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
