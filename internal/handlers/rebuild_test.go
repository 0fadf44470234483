package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"dossier-ai/internal/docstore"
	"dossier-ai/internal/indexer"
	llmmocks "dossier-ai/internal/llm/mocks"
	"dossier-ai/internal/storage"
	storagemocks "dossier-ai/internal/storage/mocks"
	vsmocks "dossier-ai/internal/vectorstore/mocks"
)

func newRebuildHandler(t *testing.T, ctrl *gomock.Controller, dir string, store *vsmocks.MockVectorStore) *RebuildHandler {
	t.Helper()

	chunker, err := indexer.NewChunker(1000, 200)
	if err != nil {
		t.Fatal(err)
	}
	embedder := llmmocks.NewMockEmbedder(ctrl)
	embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, texts []string) ([][]float32, error) {
			vecs := make([][]float32, len(texts))
			for i := range vecs {
				vecs[i] = []float32{0.1, 0.2}
			}
			return vecs, nil
		}).AnyTimes()

	pipeline := indexer.NewPipeline(docstore.New(dir), chunker, embedder, store, testCollection, nil)
	return NewRebuildHandler(pipeline)
}

func TestRebuildHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	writeDoc(t, dir, "contrat_jean_dupont.txt")

	store := vsmocks.NewMockVectorStore(ctrl)
	gomock.InOrder(
		store.EXPECT().DeleteWhere(gomock.Any(), testCollection, nil).Return(0, nil),
		store.EXPECT().Upsert(gomock.Any(), testCollection, gomock.Any()).Return(nil),
	)

	handler := newRebuildHandler(t, ctrl, dir, store)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/rebuild", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp RebuildResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.FilesProcessed != 1 || resp.FilesSkipped != 0 {
		t.Errorf("FilesProcessed = %d, FilesSkipped = %d", resp.FilesProcessed, resp.FilesSkipped)
	}
	if resp.ChunksIndexed < 1 {
		t.Errorf("ChunksIndexed = %d, want at least 1", resp.ChunksIndexed)
	}
	if resp.Status != "ok" {
		t.Errorf("Status = %q, want ok", resp.Status)
	}
}

func TestRebuildHandler_ClearFailure(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := vsmocks.NewMockVectorStore(ctrl)
	store.EXPECT().DeleteWhere(gomock.Any(), testCollection, nil).Return(0, errors.New("collection gone"))

	handler := newRebuildHandler(t, ctrl, t.TempDir(), store)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/rebuild", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestRebuildHistoryHandler_DefaultLimit(t *testing.T) {
	ctrl := gomock.NewController(t)

	history := storagemocks.NewMockRebuildStore(ctrl)
	history.EXPECT().ListRecent(gomock.Any(), 10).Return([]storage.RebuildRun{
		{ID: 2, StartedAt: time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC), ChunksIndexed: 42},
		{ID: 1, StartedAt: time.Date(2026, 8, 22, 10, 0, 0, 0, time.UTC), ChunksIndexed: 41},
	}, nil)

	handler := NewRebuildHistoryHandler(history)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rebuilds", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp RebuildHistoryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Runs) != 2 || resp.Runs[0].ID != 2 {
		t.Errorf("Runs = %+v, want newest first", resp.Runs)
	}
}

func TestRebuildHistoryHandler_CustomLimit(t *testing.T) {
	ctrl := gomock.NewController(t)

	history := storagemocks.NewMockRebuildStore(ctrl)
	history.EXPECT().ListRecent(gomock.Any(), 3).Return(nil, nil)

	handler := NewRebuildHistoryHandler(history)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rebuilds?limit=3", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp RebuildHistoryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Runs == nil || len(resp.Runs) != 0 {
		t.Errorf("Runs = %v, want empty non-nil list", resp.Runs)
	}
}

func TestRebuildHistoryHandler_InvalidLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := NewRebuildHistoryHandler(storagemocks.NewMockRebuildStore(ctrl))

	for _, limit := range []string{"0", "-1", "beaucoup"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rebuilds?limit="+limit, nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: status = %d, want 400", limit, rec.Code)
		}
	}
}
