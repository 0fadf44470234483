package indexer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"dossier-ai/internal/contextutil"
	"dossier-ai/internal/docstore"
	"dossier-ai/internal/llm"
	"dossier-ai/internal/loader"
	"dossier-ai/internal/storage"
	"dossier-ai/internal/vectorstore"
)

// RebuildResult summarizes one full index rebuild.
type RebuildResult struct {
	FilesProcessed int           `json:"files_processed"`
	FilesSkipped   int           `json:"files_skipped"`
	ChunksIndexed  int           `json:"chunks_indexed"`
	Duration       time.Duration `json:"-"`
}

// Pipeline rebuilds the vector index from the document store. A rebuild is
// the only way chunks enter the index: clear everything, then read, clean,
// chunk, extract metadata and embed every document, and bulk-insert the
// result. Rebuilds are serialized by a mutex; a failing document is skipped
// and counted, never aborting the whole run.
type Pipeline struct {
	docs       *docstore.Store
	chunker    *Chunker
	embedder   llm.Embedder
	store      vectorstore.VectorStore
	collection string
	history    storage.RebuildStore

	mu sync.Mutex
}

// NewPipeline creates an indexing pipeline. history may be nil, in which
// case rebuild runs are not persisted.
func NewPipeline(docs *docstore.Store, chunker *Chunker, embedder llm.Embedder, store vectorstore.VectorStore, collection string, history storage.RebuildStore) *Pipeline {
	return &Pipeline{
		docs:       docs,
		chunker:    chunker,
		embedder:   embedder,
		store:      store,
		collection: collection,
		history:    history,
	}
}

// Rebuild clears the index and re-indexes every document on disk. Calling it
// on an already synchronized index is safe and simply reproduces the same
// contents. Documents that fail to load or embed are skipped and counted in
// FilesSkipped.
func (p *Pipeline) Rebuild(ctx context.Context) (*RebuildResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	logger := contextutil.LoggerFromContext(ctx)
	start := time.Now()

	if _, err := p.store.DeleteWhere(ctx, p.collection, nil); err != nil {
		return nil, fmt.Errorf("failed to clear index: %w", err)
	}

	names, err := p.docs.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	result := &RebuildResult{}
	var points []vectorstore.Point
	for _, name := range names {
		filePoints, err := p.processFile(ctx, name)
		if err != nil {
			logger.WarnContext(ctx, "skipping document", "source", name, "error", err)
			result.FilesSkipped++
			continue
		}
		points = append(points, filePoints...)
		result.FilesProcessed++
	}

	if len(points) > 0 {
		if err := p.store.Upsert(ctx, p.collection, points); err != nil {
			return nil, fmt.Errorf("failed to index chunks: %w", err)
		}
	}
	result.ChunksIndexed = len(points)
	result.Duration = time.Since(start)

	p.recordRun(ctx, start, result)

	logger.InfoContext(ctx, "index rebuilt",
		"files", result.FilesProcessed,
		"skipped", result.FilesSkipped,
		"chunks", result.ChunksIndexed,
		"duration", result.Duration)
	return result, nil
}

// DeleteSource removes every indexed chunk of one document and returns how
// many were removed. The document file itself is untouched.
func (p *Pipeline) DeleteSource(ctx context.Context, name string) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.store.DeleteWhere(ctx, p.collection, vectorstore.Eq(vectorstore.FieldSource, name))
}

// processFile turns one document into index points. Embedding happens per
// file so an embedding failure only loses that file.
func (p *Pipeline) processFile(ctx context.Context, name string) ([]vectorstore.Point, error) {
	content, err := p.docs.ReadFile(name)
	if err != nil {
		return nil, err
	}

	text, err := loader.Read(name, content)
	if err != nil {
		return nil, err
	}

	chunks := p.chunker.Split(CleanText(text))
	if len(chunks) == 0 {
		return nil, nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vecs, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(vecs) != len(chunks) {
		return nil, fmt.Errorf("expected %d vectors, got %d", len(chunks), len(vecs))
	}

	points := make([]vectorstore.Point, len(chunks))
	for i, chunk := range chunks {
		points[i] = vectorstore.Point{
			ID:   uuid.New().String(),
			Vec:  vecs[i],
			Text: chunk.Text,
			Meta: ExtractMetadata(name, chunk.Text, chunk.Index),
		}
	}
	return points, nil
}

func (p *Pipeline) recordRun(ctx context.Context, startedAt time.Time, result *RebuildResult) {
	if p.history == nil {
		return
	}

	run := &storage.RebuildRun{
		StartedAt:      startedAt,
		Duration:       result.Duration.Milliseconds(),
		FilesProcessed: result.FilesProcessed,
		FilesSkipped:   result.FilesSkipped,
		ChunksIndexed:  result.ChunksIndexed,
	}
	if err := p.history.Record(ctx, run); err != nil {
		// History is advisory; a failed insert never fails the rebuild.
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to record rebuild run", "error", err)
	}
}
