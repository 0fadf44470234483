package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"dossier-ai/internal/docstore"
	"dossier-ai/internal/reconcile"
	storagemocks "dossier-ai/internal/storage/mocks"
	vsmocks "dossier-ai/internal/vectorstore/mocks"
)

func newTestRouter(t *testing.T, ctrl *gomock.Controller, store *vsmocks.MockVectorStore) http.Handler {
	t.Helper()
	docs := docstore.New(t.TempDir())
	return NewRouter(&Deps{
		Reconciler:  reconcile.New(docs, store, "legal_documents"),
		Docs:        docs,
		VectorStore: store,
		History:     storagemocks.NewMockRebuildStore(ctrl),
		Collection:  "legal_documents",
	})
}

func TestRouter_Health(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := vsmocks.NewMockVectorStore(ctrl)
	store.EXPECT().Count(gomock.Any(), "legal_documents").Return(7, nil)

	router := newTestRouter(t, ctrl, store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("missing CORS header on response")
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := newTestRouter(t, ctrl, vsmocks.NewMockVectorStore(ctrl))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ask", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := newTestRouter(t, ctrl, vsmocks.NewMockVectorStore(ctrl))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/ask", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204 for preflight", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Errorf("Allow-Origin = %q, want the request origin echoed", rec.Header().Get("Access-Control-Allow-Origin"))
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("missing Access-Control-Allow-Methods header")
	}
}
