package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultOllamaURL       = "http://localhost:11434"
	defaultOllamaTimeout   = 120 * time.Second
	defaultGeneratorModel  = "qwen2:7b"
	defaultEmbeddingModel  = "nomic-embed-text"
	ollamaGeneratePath     = "/api/generate"
	ollamaEmbeddingsPath   = "/api/embeddings"
	maxEmbeddingInputBytes = 30000
)

// rate limiter for the local runtime (10 requests/second with burst capacity of 5);
// a single Ollama instance serializes generation anyway, this just keeps
// reload-triggered embedding bursts from piling up requests
var ollamaRateLimiter = rate.NewLimiter(10, 5)

// shared HTTP plumbing for the Ollama API
type ollamaClient struct {
	baseURL    string
	httpClient *http.Client
}

func newOllamaClient(baseURL string, timeout time.Duration) *ollamaClient {
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}

	if timeout == 0 {
		timeout = defaultOllamaTimeout
	}

	return &ollamaClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout, // total request timeout, local generation can be slow
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// posts a JSON body and decodes the JSON response into out
func (c *ollamaClient) postJSON(ctx context.Context, path string, reqBody, out any) error {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if err := ollamaRateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck
		return fmt.Errorf("ollama request failed with status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Model           string `json:"model"`
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
}

type ollamaEmbeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbeddingResponse struct {
	Embedding []float64 `json:"embedding"`
}

// generates completions against a local Ollama runtime
type OllamaGenerator struct {
	client *ollamaClient
	model  string
}

func NewOllamaGenerator(client *ollamaClient, model string) *OllamaGenerator {
	if model == "" {
		model = defaultGeneratorModel
	}

	return &OllamaGenerator{client: client, model: model}
}

func (g *OllamaGenerator) Model() string {
	return g.model
}

func (g *OllamaGenerator) Complete(ctx context.Context, prompt string) (*CompletionResult, error) {
	reqBody := generateRequest{
		Model:  g.model,
		Prompt: prompt,
		Stream: false,
	}

	var genResp generateResponse
	if err := g.client.postJSON(ctx, ollamaGeneratePath, reqBody, &genResp); err != nil {
		return nil, err
	}

	if genResp.Response == "" && !genResp.Done {
		return nil, fmt.Errorf("incomplete response from ollama")
	}

	return &CompletionResult{
		Text:         genResp.Response,
		Model:        genResp.Model,
		InputTokens:  genResp.PromptEvalCount,
		OutputTokens: genResp.EvalCount,
	}, nil
}

// generates embeddings against a local Ollama runtime
type OllamaEmbedder struct {
	client *ollamaClient
	model  string
}

func NewOllamaEmbedder(client *ollamaClient, model string) *OllamaEmbedder {
	if model == "" {
		model = defaultEmbeddingModel
	}

	return &OllamaEmbedder{client: client, model: model}
}

func (e *OllamaEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if len(text) > maxEmbeddingInputBytes {
		text = text[:maxEmbeddingInputBytes]
	}

	reqBody := ollamaEmbeddingRequest{
		Model:  e.model,
		Prompt: text,
	}

	var embResp ollamaEmbeddingResponse
	if err := e.client.postJSON(ctx, ollamaEmbeddingsPath, reqBody, &embResp); err != nil {
		return nil, err
	}

	if len(embResp.Embedding) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	embedding := make([]float32, len(embResp.Embedding))
	for i, v := range embResp.Embedding {
		embedding[i] = float32(v)
	}

	return embedding, nil
}

// the embeddings endpoint takes one prompt at a time, so texts are embedded sequentially
func (e *OllamaEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts provided")
	}

	embeddings := make([][]float32, len(texts))

	for i, text := range texts {
		embedding, err := e.GenerateEmbedding(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed text %d: %w", i, err)
		}

		embeddings[i] = embedding
	}

	return embeddings, nil
}
