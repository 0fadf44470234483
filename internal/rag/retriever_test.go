package rag

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	llmmocks "dossier-ai/internal/llm/mocks"
	"dossier-ai/internal/vectorstore"
	vsmocks "dossier-ai/internal/vectorstore/mocks"
)

const testCollection = "legal_documents"

var testQueryVec = []float32{0.1, 0.2, 0.3}

func newTestRetriever(t *testing.T, ctrl *gomock.Controller, store *vsmocks.MockVectorStore) *Retriever {
	t.Helper()
	embedder := llmmocks.NewMockEmbedder(ctrl)
	embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return([][]float32{testQueryVec}, nil).AnyTimes()
	return NewRetriever(embedder, store, testCollection, 5)
}

func searchHits(n int) []vectorstore.SearchResult {
	hits := make([]vectorstore.SearchResult, n)
	for i := range hits {
		hits[i] = vectorstore.SearchResult{
			PointID: "id",
			Score:   0.9,
			Text:    "extrait de document",
			Meta:    vectorstore.ChunkMetadata{Source: "facture_client.txt", ChunkID: i, TypeDoc: "facture"},
		}
	}
	return hits
}

func TestRetriever_Retrieve_FilteredAccepted(t *testing.T) {
	ctrl := gomock.NewController(t)

	wantFilter := vectorstore.AllOf(
		vectorstore.Eq(vectorstore.FieldPersonne, "Jean Dupont"),
		vectorstore.Eq(vectorstore.FieldTypeDoc, "contrat"),
	)

	store := vsmocks.NewMockVectorStore(ctrl)
	store.EXPECT().Search(gomock.Any(), testCollection, testQueryVec, 5, wantFilter).Return(searchHits(2), nil)

	retriever := newTestRetriever(t, ctrl, store)
	result, err := retriever.Retrieve(context.Background(), "contrat de Jean Dupont", "Jean Dupont", "contrat")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	if result.Outcome != OutcomeFiltered {
		t.Errorf("Outcome = %v, want %v", result.Outcome, OutcomeFiltered)
	}
	if len(result.Passages) != 2 {
		t.Fatalf("passages = %d, want 2", len(result.Passages))
	}
	for i, passage := range result.Passages {
		if passage.Position != i+1 {
			t.Errorf("passage %d Position = %d, want %d", i, passage.Position, i+1)
		}
	}
}

func TestRetriever_Retrieve_RelaxesPersonFilter(t *testing.T) {
	ctrl := gomock.NewController(t)

	fullFilter := vectorstore.AllOf(
		vectorstore.Eq(vectorstore.FieldPersonne, "Jean Dupont"),
		vectorstore.Eq(vectorstore.FieldTypeDoc, "facture"),
	)
	relaxedFilter := vectorstore.Eq(vectorstore.FieldTypeDoc, "facture")

	store := vsmocks.NewMockVectorStore(ctrl)
	gomock.InOrder(
		store.EXPECT().Search(gomock.Any(), testCollection, testQueryVec, 5, fullFilter).Return(nil, nil),
		store.EXPECT().Search(gomock.Any(), testCollection, testQueryVec, 5, relaxedFilter).Return(searchHits(3), nil),
	)

	retriever := newTestRetriever(t, ctrl, store)
	result, err := retriever.Retrieve(context.Background(), "facture de Jean Dupont", "Jean Dupont", "facture")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	if result.Outcome != OutcomeRelaxed {
		t.Errorf("Outcome = %v, want %v", result.Outcome, OutcomeRelaxed)
	}
	if len(result.Passages) != 3 {
		t.Errorf("passages = %d, want 3", len(result.Passages))
	}
}

func TestRetriever_Retrieve_NoPersonNoRelaxation(t *testing.T) {
	ctrl := gomock.NewController(t)

	// Only the doc_type filter is set; an empty result is terminal, the
	// type filter is never relaxed.
	store := vsmocks.NewMockVectorStore(ctrl)
	store.EXPECT().Search(gomock.Any(), testCollection, testQueryVec, 5, vectorstore.Eq(vectorstore.FieldTypeDoc, "facture")).Return(nil, nil)

	retriever := newTestRetriever(t, ctrl, store)
	result, err := retriever.Retrieve(context.Background(), "la facture impayée", "", "facture")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	if result.Outcome != OutcomeEmpty {
		t.Errorf("Outcome = %v, want %v", result.Outcome, OutcomeEmpty)
	}
	if len(result.Passages) != 0 {
		t.Errorf("passages = %d, want 0", len(result.Passages))
	}
}

func TestRetriever_Retrieve_BothSearchesEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := vsmocks.NewMockVectorStore(ctrl)
	gomock.InOrder(
		store.EXPECT().Search(gomock.Any(), testCollection, testQueryVec, 5, vectorstore.Eq(vectorstore.FieldPersonne, "Jean Dupont")).Return(nil, nil),
		store.EXPECT().Search(gomock.Any(), testCollection, testQueryVec, 5, nil).Return(nil, nil),
	)

	retriever := newTestRetriever(t, ctrl, store)
	result, err := retriever.Retrieve(context.Background(), "dossier de Jean Dupont", "Jean Dupont", "")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if result.Outcome != OutcomeEmpty {
		t.Errorf("Outcome = %v, want %v", result.Outcome, OutcomeEmpty)
	}
}

func TestRetriever_Retrieve_UnfilteredSearch(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := vsmocks.NewMockVectorStore(ctrl)
	store.EXPECT().Search(gomock.Any(), testCollection, testQueryVec, 5, nil).Return(searchHits(1), nil)

	retriever := newTestRetriever(t, ctrl, store)
	result, err := retriever.Retrieve(context.Background(), "quels sont les délais ?", "", "")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if result.Outcome != OutcomeFiltered {
		t.Errorf("Outcome = %v, want %v", result.Outcome, OutcomeFiltered)
	}
}

func TestRetriever_Retrieve_SearchError(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := vsmocks.NewMockVectorStore(ctrl)
	store.EXPECT().Search(gomock.Any(), testCollection, testQueryVec, 5, nil).Return(nil, errors.New("index unavailable"))

	retriever := newTestRetriever(t, ctrl, store)
	if _, err := retriever.Retrieve(context.Background(), "question", "", ""); err == nil {
		t.Error("Retrieve() should propagate search errors")
	}
}

func TestRetriever_Retrieve_EmbeddingError(t *testing.T) {
	ctrl := gomock.NewController(t)

	embedder := llmmocks.NewMockEmbedder(ctrl)
	embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return(nil, errors.New("embedding service down"))

	retriever := NewRetriever(embedder, vsmocks.NewMockVectorStore(ctrl), testCollection, 5)
	if _, err := retriever.Retrieve(context.Background(), "question", "", ""); err == nil {
		t.Error("Retrieve() should propagate embedding errors")
	}
}
