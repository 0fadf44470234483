package rag

import (
	"context"
	"fmt"

	"dossier-ai/internal/contextutil"
	"dossier-ai/internal/llm"
	"dossier-ai/internal/vectorstore"
)

// Retriever executes filtered similarity search over the index with a
// fallback state machine:
//
//	Filtered: search with the full filter set; non-empty results win.
//	Relaxed:  only reached when Filtered was empty and a person filter was
//	          present; the person filter is removed, the type filter kept.
//	Empty:    terminal, no passages.
//
// The person filter is the one relaxed because free-text person extraction
// is heuristic; the document-type filter is never relaxed.
type Retriever struct {
	embedder   llm.Embedder
	store      vectorstore.VectorStore
	collection string
	k          int
}

// RetrievalResult carries the passages together with the state that
// produced them.
type RetrievalResult struct {
	Passages []Passage
	Outcome  Outcome
}

// NewRetriever creates a retriever returning at most k passages per query.
func NewRetriever(embedder llm.Embedder, store vectorstore.VectorStore, collection string, k int) *Retriever {
	return &Retriever{
		embedder:   embedder,
		store:      store,
		collection: collection,
		k:          k,
	}
}

// Retrieve embeds the query and runs the search state machine. person and
// docType are optional filters; empty strings mean unfiltered.
func (r *Retriever) Retrieve(ctx context.Context, query, person, docType string) (RetrievalResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	vecs, err := r.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return RetrievalResult{}, fmt.Errorf("failed to embed query: %w", err)
	}
	queryVec := vecs[0]

	results, err := r.store.Search(ctx, r.collection, queryVec, r.k, buildFilter(person, docType))
	if err != nil {
		return RetrievalResult{}, fmt.Errorf("filtered search failed: %w", err)
	}
	if len(results) > 0 {
		return RetrievalResult{Passages: toPassages(results), Outcome: OutcomeFiltered}, nil
	}

	if person == "" {
		return RetrievalResult{Outcome: OutcomeEmpty}, nil
	}

	logger.InfoContext(ctx, "no results with person filter, relaxing", "person", person, "doc_type", docType)
	results, err = r.store.Search(ctx, r.collection, queryVec, r.k, buildFilter("", docType))
	if err != nil {
		return RetrievalResult{}, fmt.Errorf("relaxed search failed: %w", err)
	}
	if len(results) > 0 {
		return RetrievalResult{Passages: toPassages(results), Outcome: OutcomeRelaxed}, nil
	}

	return RetrievalResult{Outcome: OutcomeEmpty}, nil
}

// buildFilter translates the optional person and type filters into the
// filter grammar: nil, a single equality or a conjunction.
func buildFilter(person, docType string) vectorstore.Filter {
	var filters []vectorstore.Filter
	if person != "" {
		filters = append(filters, vectorstore.Eq(vectorstore.FieldPersonne, person))
	}
	if docType != "" {
		filters = append(filters, vectorstore.Eq(vectorstore.FieldTypeDoc, docType))
	}
	return vectorstore.AllOf(filters...)
}

func toPassages(results []vectorstore.SearchResult) []Passage {
	passages := make([]Passage, len(results))
	for i, result := range results {
		passages[i] = Passage{
			Position: i + 1,
			Text:     result.Text,
			Score:    result.Score,
			Source:   result.Meta.Source,
			ChunkID:  result.Meta.ChunkID,
			TypeDoc:  result.Meta.TypeDoc,
			Personne: result.Meta.Personne,
		}
	}
	return passages
}
