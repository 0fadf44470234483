package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks dossier-ai/internal/vectorstore VectorStore

import (
	"context"
	"strconv"
)

// Metadata payload field names.
const (
	FieldSource      = "source"
	FieldChunkID     = "chunk_id"
	FieldTypeDoc     = "type_doc"
	FieldPersonne    = "personne"
	FieldLength      = "length"
	FieldDateMention = "date_mention"
	FieldText        = "text"
)

// ChunkMetadata holds the structured attributes attached to an indexed chunk.
// It is derived from chunk text plus filename, recomputed whenever a chunk is
// recreated, and never mutated in place.
type ChunkMetadata struct {
	Source      string // Owning document's stored filename
	ChunkID     int    // Zero-based position within the document
	TypeDoc     string // One tag from the fixed vocabulary, "autre" by default
	Personne    string // Optional normalized person name
	Length      int    // Chunk text length in characters
	DateMention string // Optional first date-like mention
}

// Point represents an indexed chunk: text, metadata and embedding vector.
type Point struct {
	ID   string
	Vec  []float32
	Text string
	Meta ChunkMetadata
}

// SearchResult represents one hit from a similarity search.
type SearchResult struct {
	PointID string
	Score   float32
	Text    string
	Meta    ChunkMetadata
}

// StoredChunk pairs a point ID with its metadata, as returned by Get.
type StoredChunk struct {
	ID   string
	Meta ChunkMetadata
}

// VectorStore defines the capability the core needs from the vector index:
// bulk add, filtered delete, metadata listing, count and similarity search.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs a similarity search with an optional filter (nil means unfiltered).
	Search(ctx context.Context, collection string, query []float32, k int, filter Filter) ([]SearchResult, error)

	// DeleteWhere removes all points matching the filter and returns how many were removed.
	// A nil filter removes every point (index clear).
	DeleteWhere(ctx context.Context, collection string, filter Filter) (int, error)

	// Get lists IDs and metadata of points matching the filter (nil means all).
	Get(ctx context.Context, collection string, filter Filter) ([]StoredChunk, error)

	// Count returns the total number of points in the collection.
	Count(ctx context.Context, collection string) (int, error)
}

// metadataToPayload converts ChunkMetadata and chunk text into a flat payload map.
func metadataToPayload(text string, m ChunkMetadata) map[string]any {
	payload := map[string]any{
		FieldSource:  m.Source,
		FieldChunkID: m.ChunkID,
		FieldTypeDoc: m.TypeDoc,
		FieldLength:  m.Length,
		FieldText:    text,
	}
	// Optional fields are omitted rather than stored empty, so equality
	// filters never match blank values.
	if m.Personne != "" {
		payload[FieldPersonne] = m.Personne
	}
	if m.DateMention != "" {
		payload[FieldDateMention] = m.DateMention
	}
	return payload
}

// payloadToMetadata converts a payload map back into text and ChunkMetadata.
func payloadToMetadata(payload map[string]any) (string, ChunkMetadata) {
	meta := ChunkMetadata{
		Source:      asString(payload[FieldSource]),
		ChunkID:     asInt(payload[FieldChunkID]),
		TypeDoc:     asString(payload[FieldTypeDoc]),
		Personne:    asString(payload[FieldPersonne]),
		Length:      asInt(payload[FieldLength]),
		DateMention: asString(payload[FieldDateMention]),
	}
	return asString(payload[FieldText]), meta
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		parsed, _ := strconv.Atoi(n)
		return parsed
	default:
		return 0
	}
}
