package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOllamaGenerator_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != ollamaGeneratePath {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}

		if req.Model != "test-model" {
			t.Errorf("expected model test-model, got %s", req.Model)
		}

		if req.Stream {
			t.Error("streaming should be disabled")
		}

		json.NewEncoder(w).Encode(generateResponse{ //nolint:errcheck,gosec // test fixture
			Model:           req.Model,
			Response:        "the answer",
			Done:            true,
			PromptEvalCount: 12,
			EvalCount:       5,
		})
	}))
	defer server.Close()

	client := newOllamaClient(server.URL, 5*time.Second)
	gen := NewOllamaGenerator(client, "test-model")

	result, err := gen.Complete(context.Background(), "the question")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Text != "the answer" {
		t.Errorf("unexpected text: %s", result.Text)
	}

	if result.InputTokens != 12 || result.OutputTokens != 5 {
		t.Errorf("unexpected usage: %d in, %d out", result.InputTokens, result.OutputTokens)
	}
}

func TestOllamaGenerator_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := newOllamaClient(server.URL, 5*time.Second)
	gen := NewOllamaGenerator(client, "missing-model")

	_, err := gen.Complete(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestOllamaEmbedder_GenerateEmbedding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != ollamaEmbeddingsPath {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		json.NewEncoder(w).Encode(ollamaEmbeddingResponse{ //nolint:errcheck,gosec // test fixture
			Embedding: []float64{0.1, 0.2, 0.3},
		})
	}))
	defer server.Close()

	client := newOllamaClient(server.URL, 5*time.Second)
	embedder := NewOllamaEmbedder(client, "test-embed")

	embedding, err := embedder.GenerateEmbedding(context.Background(), "some text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(embedding) != 3 {
		t.Fatalf("expected 3 dimensions, got %d", len(embedding))
	}

	// float64 response converted to float32
	if embedding[0] != float32(0.1) {
		t.Errorf("unexpected first value: %f", embedding[0])
	}
}

func TestOllamaEmbedder_EmptyEmbedding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(ollamaEmbeddingResponse{}) //nolint:errcheck,gosec // test fixture
	}))
	defer server.Close()

	client := newOllamaClient(server.URL, 5*time.Second)
	embedder := NewOllamaEmbedder(client, "test-embed")

	if _, err := embedder.GenerateEmbedding(context.Background(), "some text"); err == nil {
		t.Fatal("expected error for empty embedding")
	}
}

func TestOllamaEmbedder_GenerateEmbeddings(t *testing.T) {
	var requests int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++

		json.NewEncoder(w).Encode(ollamaEmbeddingResponse{ //nolint:errcheck,gosec // test fixture
			Embedding: []float64{0.5},
		})
	}))
	defer server.Close()

	client := newOllamaClient(server.URL, 5*time.Second)
	embedder := NewOllamaEmbedder(client, "test-embed")

	embeddings, err := embedder.GenerateEmbeddings(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(embeddings) != 3 {
		t.Errorf("expected 3 embeddings, got %d", len(embeddings))
	}

	// one API call per text, the embeddings endpoint is single-prompt
	if requests != 3 {
		t.Errorf("expected 3 requests, got %d", requests)
	}

	if _, err := embedder.GenerateEmbeddings(context.Background(), nil); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestNewLLMWithConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{"nil config", nil, true},
		{"ollama provider", &Config{Provider: ProviderOllama}, false},
		{"openai provider", &Config{Provider: ProviderOpenAI, APIKey: "sk-test"}, false},
		{"unknown provider", &Config{Provider: "bedrock"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewLLMWithConfig(tt.config)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if client == nil {
				t.Fatal("expected client")
			}
		})
	}
}
