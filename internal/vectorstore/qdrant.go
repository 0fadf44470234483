package vectorstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"

	"dossier-ai/internal/contextutil"
	"dossier-ai/internal/service"
)

// QdrantStore implements VectorStore using Qdrant.
type QdrantStore struct {
	client *qdrant.Client
}

// NewQdrantStore creates a new Qdrant vector store client.
// urlStr should be in the format "http://host:port" (e.g., "http://localhost:6333").
// The gRPC port (typically 6334) will be derived from the HTTP port.
func NewQdrantStore(urlStr string) (*QdrantStore, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		host = "localhost"
	}

	// Extract port from URL, default to 6333 for HTTP
	port := 6334 // Default gRPC port
	if parsedURL.Port() != "" {
		httpPort, err := strconv.Atoi(parsedURL.Port())
		if err == nil {
			// gRPC port is typically HTTP port + 1
			port = httpPort + 1
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &QdrantStore{
		client: client,
	}, nil
}

// Upsert inserts or updates points in the collection.
func (s *QdrantStore) Upsert(ctx context.Context, collection string, points []Point) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(points) == 0 {
		return nil
	}

	qdrantPoints := make([]*qdrant.PointStruct, 0, len(points))
	for _, point := range points {
		qdrantPoints = append(qdrantPoints, &qdrant.PointStruct{
			Id:      qdrant.NewID(point.ID),
			Vectors: qdrant.NewVectors(point.Vec...),
			Payload: qdrant.NewValueMap(metadataToPayload(point.Text, point.Meta)),
		})
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         qdrantPoints,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to upsert points", "collection", collection, "count", len(points), "error", err)
		return fmt.Errorf("failed to upsert points: %w: %w", service.ErrIndexUnavailable, err)
	}

	logger.InfoContext(ctx, "upserted points", "collection", collection, "count", len(points))
	return nil
}

// Search performs a similarity search with an optional metadata filter.
func (s *QdrantStore) Search(ctx context.Context, collection string, query []float32, k int, filter Filter) ([]SearchResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	limit := uint64(k)
	queryReq := &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(query...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if qf := toQdrantFilter(filter); qf != nil {
		queryReq.Filter = qf
	}

	scoredPoints, err := s.client.Query(ctx, queryReq)
	if err != nil {
		logger.ErrorContext(ctx, "failed to search points", "collection", collection, "k", k, "error", err)
		return nil, fmt.Errorf("failed to search points: %w: %w", service.ErrIndexUnavailable, err)
	}

	results := make([]SearchResult, 0, len(scoredPoints))
	for _, point := range scoredPoints {
		pointID := ""
		if point.Id != nil {
			pointID = point.Id.GetUuid()
		}

		text, meta := payloadToMetadata(convertPayloadToMap(point.Payload))
		results = append(results, SearchResult{
			PointID: pointID,
			Score:   point.Score,
			Text:    text,
			Meta:    meta,
		})
	}

	logger.InfoContext(ctx, "search completed", "collection", collection, "k", k, "filter", filterString(filter), "results", len(results))
	return results, nil
}

// DeleteWhere removes all points matching the filter and returns how many
// were removed. A nil filter clears the whole collection; clearing an empty
// collection is a no-op.
func (s *QdrantStore) DeleteWhere(ctx context.Context, collection string, filter Filter) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	qf := toQdrantFilter(filter)
	if qf == nil {
		qf = &qdrant.Filter{} // Empty filter matches every point
	}

	count, err := s.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: collection,
		Filter:         qf,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to count points for deletion", "collection", collection, "error", err)
		return 0, fmt.Errorf("failed to count points: %w: %w", service.ErrIndexUnavailable, err)
	}

	if count == 0 {
		return 0, nil
	}

	_, err = s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collection,
		Points:         qdrant.NewPointsSelectorFilter(qf),
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to delete points", "collection", collection, "error", err)
		return 0, fmt.Errorf("failed to delete points: %w: %w", service.ErrIndexUnavailable, err)
	}

	logger.InfoContext(ctx, "deleted points", "collection", collection, "filter", filterString(filter), "count", count)
	return int(count), nil
}

// Get lists IDs and metadata of points matching the filter (nil means all).
func (s *QdrantStore) Get(ctx context.Context, collection string, filter Filter) ([]StoredChunk, error) {
	logger := contextutil.LoggerFromContext(ctx)

	total, err := s.Count(ctx, collection)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, nil
	}

	scrollReq := &qdrant.ScrollPoints{
		CollectionName: collection,
		Limit:          qdrant.PtrOf(uint32(total)),
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if qf := toQdrantFilter(filter); qf != nil {
		scrollReq.Filter = qf
	}

	points, err := s.client.Scroll(ctx, scrollReq)
	if err != nil {
		logger.ErrorContext(ctx, "failed to scroll points", "collection", collection, "error", err)
		return nil, fmt.Errorf("failed to scroll points: %w: %w", service.ErrIndexUnavailable, err)
	}

	chunks := make([]StoredChunk, 0, len(points))
	for _, point := range points {
		pointID := ""
		if point.Id != nil {
			pointID = point.Id.GetUuid()
		}
		_, meta := payloadToMetadata(convertPayloadToMap(point.Payload))
		chunks = append(chunks, StoredChunk{ID: pointID, Meta: meta})
	}
	return chunks, nil
}

// Count returns the total number of points in the collection.
func (s *QdrantStore) Count(ctx context.Context, collection string) (int, error) {
	count, err := s.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: collection,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count points: %w: %w", service.ErrIndexUnavailable, err)
	}
	return int(count), nil
}

// CollectionExists checks if a collection exists.
func (s *QdrantStore) CollectionExists(ctx context.Context, collection string) (bool, error) {
	exists, err := s.client.CollectionExists(ctx, collection)
	if err != nil {
		return false, fmt.Errorf("failed to check collection existence: %w", err)
	}
	return exists, nil
}

// EnsureCollection ensures a collection exists with the specified vector size.
// If the collection exists, validates that the vector size matches.
// If it doesn't exist, creates it with the specified vector size.
func (s *QdrantStore) EnsureCollection(ctx context.Context, collection string, vectorSize int) error {
	logger := contextutil.LoggerFromContext(ctx)

	exists, err := s.CollectionExists(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}

	if !exists {
		logger.InfoContext(ctx, "creating collection", "collection", collection, "vector_size", vectorSize)
		err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: collection,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     uint64(vectorSize),
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
		logger.InfoContext(ctx, "collection created", "collection", collection, "vector_size", vectorSize)
		return nil
	}

	// Collection exists, validate vector size
	info, err := s.client.GetCollectionInfo(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to get collection info: %w", err)
	}

	config := info.Config
	if config == nil || config.Params == nil {
		return fmt.Errorf("collection config is invalid")
	}

	vectorsConfig := config.Params.GetVectorsConfig()
	if vectorsConfig == nil {
		return fmt.Errorf("collection vectors config is invalid")
	}

	params := vectorsConfig.GetParams()
	if params == nil {
		return fmt.Errorf("collection vector params are invalid")
	}

	actualSize := params.Size
	if actualSize == 0 {
		return fmt.Errorf("could not determine collection vector size")
	}

	if int(actualSize) != vectorSize {
		return fmt.Errorf("collection vector size mismatch: expected %d, got %d", vectorSize, actualSize)
	}

	logger.InfoContext(ctx, "collection validated", "collection", collection, "vector_size", vectorSize)
	return nil
}

// toQdrantFilter translates the closed filter grammar into a Qdrant filter.
// Every equality test becomes a keyword match in the Must clause.
func toQdrantFilter(f Filter) *qdrant.Filter {
	conditions := flatten(f)
	if len(conditions) == 0 {
		return nil
	}

	must := make([]*qdrant.Condition, 0, len(conditions))
	for _, eq := range conditions {
		must = append(must, qdrant.NewMatch(eq.Field, eq.Value))
	}
	return &qdrant.Filter{Must: must}
}

// filterString renders a filter for logging; nil filters log as "none".
func filterString(f Filter) string {
	if f == nil {
		return "none"
	}
	return f.String()
}

// convertPayloadToMap converts Qdrant payload to map[string]any.
func convertPayloadToMap(payload map[string]*qdrant.Value) map[string]any {
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		if v == nil {
			continue
		}
		result[k] = convertValue(v)
	}
	return result
}

// convertValue converts a Qdrant Value to Go any type.
func convertValue(v *qdrant.Value) any {
	switch val := v.Kind.(type) {
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_ListValue:
		list := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			list[i] = convertValue(item)
		}
		return list
	case *qdrant.Value_StructValue:
		return convertPayloadToMap(val.StructValue.Fields)
	default:
		return nil
	}
}
