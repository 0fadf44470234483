// Package reconcile compares the on-disk document set against the indexed
// source names to find drift. The result is always recomputed from both
// sides, never cached, so it reflects the latest state on every call.
package reconcile

import (
	"context"
	"fmt"
	"sort"

	"dossier-ai/internal/docstore"
	"dossier-ai/internal/vectorstore"
)

// SyncState is a computed view of index freshness: three disjoint sets
// partitioning the union of on-disk files and indexed sources.
type SyncState struct {
	Synced       []string `json:"synced"`        // On disk and indexed
	Pending      []string `json:"pending"`       // On disk, not yet indexed
	Orphaned     []string `json:"orphaned"`      // Indexed, no longer on disk
	NeedsRebuild bool     `json:"needs_rebuild"` // True iff pending or orphaned is non-empty
	TotalChunks  int      `json:"total_chunks"`  // Chunks currently in the index
}

// Compute derives the sync state from the current on-disk filenames and
// indexed source names. It is a pure set operation with no side effects:
// synced is the intersection, pending and orphaned the two differences.
func Compute(filesOnDisk, indexedSources []string) SyncState {
	onDisk := toSet(filesOnDisk)
	indexed := toSet(indexedSources)

	state := SyncState{
		Synced:   []string{},
		Pending:  []string{},
		Orphaned: []string{},
	}
	for name := range onDisk {
		if indexed[name] {
			state.Synced = append(state.Synced, name)
		} else {
			state.Pending = append(state.Pending, name)
		}
	}
	for name := range indexed {
		if !onDisk[name] {
			state.Orphaned = append(state.Orphaned, name)
		}
	}

	sort.Strings(state.Synced)
	sort.Strings(state.Pending)
	sort.Strings(state.Orphaned)
	state.NeedsRebuild = len(state.Pending) > 0 || len(state.Orphaned) > 0
	return state
}

// Reconciler reads the document store and the vector index to compute the
// sync state on demand.
type Reconciler struct {
	docs       *docstore.Store
	store      vectorstore.VectorStore
	collection string
}

// New creates a Reconciler over the given document store and index collection.
func New(docs *docstore.Store, store vectorstore.VectorStore, collection string) *Reconciler {
	return &Reconciler{
		docs:       docs,
		store:      store,
		collection: collection,
	}
}

// Status lists both sides and computes the current sync state.
func (r *Reconciler) Status(ctx context.Context) (SyncState, error) {
	files, err := r.docs.List()
	if err != nil {
		return SyncState{}, fmt.Errorf("failed to list documents: %w", err)
	}

	chunks, err := r.store.Get(ctx, r.collection, nil)
	if err != nil {
		return SyncState{}, fmt.Errorf("failed to list indexed chunks: %w", err)
	}

	seen := make(map[string]bool, len(chunks))
	sources := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk.Meta.Source == "" || seen[chunk.Meta.Source] {
			continue
		}
		seen[chunk.Meta.Source] = true
		sources = append(sources, chunk.Meta.Source)
	}

	state := Compute(files, sources)
	state.TotalChunks = len(chunks)
	return state, nil
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
