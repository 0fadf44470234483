package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dossier-ai/internal/service"
)

func TestEmbeddingsClient_EmbedTexts(t *testing.T) {
	tests := []struct {
		name         string
		texts        []string
		expectedSize int
		serverResp   func(t *testing.T, w http.ResponseWriter, r *http.Request)
		wantVecs     int
		wantErr      bool
	}{
		{
			name:         "successful embedding",
			texts:        []string{"premier chunk", "second chunk"},
			expectedSize: 3,
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/embeddings" {
					t.Errorf("expected /v1/embeddings, got %s", r.URL.Path)
				}
				var req EmbeddingsRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Fatalf("failed to decode request: %v", err)
				}
				if len(req.Input) != 2 {
					t.Errorf("request input = %d texts, want 2", len(req.Input))
				}

				resp := EmbeddingsResponse{Data: []EmbeddingData{
					{Embedding: []float64{0.1, 0.2, 0.3}},
					{Embedding: []float64{0.4, 0.5, 0.6}},
				}}
				_ = json.NewEncoder(w).Encode(resp)
			},
			wantVecs: 2,
		},
		{
			name:         "wrong vector size",
			texts:        []string{"chunk"},
			expectedSize: 4,
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				resp := EmbeddingsResponse{Data: []EmbeddingData{{Embedding: []float64{0.1, 0.2}}}}
				_ = json.NewEncoder(w).Encode(resp)
			},
			wantErr: true,
		},
		{
			name:         "count mismatch",
			texts:        []string{"a", "b"},
			expectedSize: 2,
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				resp := EmbeddingsResponse{Data: []EmbeddingData{{Embedding: []float64{0.1, 0.2}}}}
				_ = json.NewEncoder(w).Encode(resp)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.serverResp(t, w, r)
			}))
			defer server.Close()

			client := NewEmbeddingsClient(server.URL, "test-key", "embed-model", tt.expectedSize)
			vecs, err := client.EmbedTexts(context.Background(), tt.texts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("EmbedTexts() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && len(vecs) != tt.wantVecs {
				t.Errorf("EmbedTexts() returned %d vectors, want %d", len(vecs), tt.wantVecs)
			}
		})
	}
}

func TestEmbeddingsClient_EmbedTexts_EmptyInput(t *testing.T) {
	client := NewEmbeddingsClient("http://localhost:8081", "test-key", "embed-model", 3)
	if _, err := client.EmbedTexts(context.Background(), nil); err == nil {
		t.Error("EmbedTexts() with empty input should return error")
	}
}

func TestEmbeddingsClient_EmbedTexts_ExternalServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "test-key", "embed-model", 3)
	_, err := client.EmbedTexts(context.Background(), []string{"chunk"})
	if !errors.Is(err, service.ErrExternalService) {
		t.Errorf("EmbedTexts() error = %v, want ErrExternalService", err)
	}
}
