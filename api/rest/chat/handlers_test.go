package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brooffline/server/internal/agent"
	"github.com/brooffline/server/internal/index"
	"github.com/brooffline/server/internal/llm"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	reply string
	err   error
}

func (g *fakeGenerator) Complete(ctx context.Context, prompt string) (*llm.CompletionResult, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &llm.CompletionResult{Text: g.reply, Model: g.Model()}, nil
}

func (g *fakeGenerator) Model() string { return "fake-model" }

type fakeRetriever struct {
	results []index.SearchResult
}

func (r *fakeRetriever) Query(ctx context.Context, queryText string, topK int) ([]index.SearchResult, error) {
	return r.results, nil
}

func setupRouter(agentClient *agent.Agent) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router, agentClient)
	return router
}

func postChat(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChatHandler_LLMMode(t *testing.T) {
	agentClient := agent.New(&fakeRetriever{}, &fakeGenerator{reply: "hello there"}, agent.Options{})
	router := setupRouter(agentClient)

	w := postChat(t, router, `{"message": "hi", "mode": "llm"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "llm", resp.Mode)
	assert.Equal(t, "hello there", resp.Response)
	assert.Equal(t, "fake-model", resp.Model)
	assert.Zero(t, resp.ChunksRetrieved)
	assert.Empty(t, resp.Sources)
}

func TestChatHandler_DocsMode(t *testing.T) {
	retriever := &fakeRetriever{results: []index.SearchResult{
		{ID: "guide.md#0", DocName: "guide.md", Path: "guide.md", SectionTitle: "Setup", Content: "run the installer", Similarity: 0.9},
	}}
	agentClient := agent.New(retriever, &fakeGenerator{reply: "install it"}, agent.Options{})
	router := setupRouter(agentClient)

	w := postChat(t, router, `{"message": "how do I install?", "mode": "docs"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "docs", resp.Mode)
	assert.Equal(t, 1, resp.ChunksRetrieved)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "guide.md", resp.Sources[0].DocName)
}

func TestChatHandler_AutoModeDetection(t *testing.T) {
	agentClient := agent.New(&fakeRetriever{}, &fakeGenerator{reply: "ok"}, agent.Options{
		DocsKeywords: []string{"document", "docs"},
	})
	router := setupRouter(agentClient)

	// keyword in the message routes to docs mode
	w := postChat(t, router, `{"message": "what does the document say?"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "docs", resp.Mode)

	// no keyword falls back to llm mode
	w = postChat(t, router, `{"message": "tell me a joke"}`)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "llm", resp.Mode)
}

func TestChatHandler_InvalidMode(t *testing.T) {
	agentClient := agent.New(&fakeRetriever{}, &fakeGenerator{reply: "ok"}, agent.Options{})
	router := setupRouter(agentClient)

	w := postChat(t, router, `{"message": "hi", "mode": "turbo"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid_mode", body["error"])
}

func TestChatHandler_MissingMessage(t *testing.T) {
	agentClient := agent.New(&fakeRetriever{}, &fakeGenerator{reply: "ok"}, agent.Options{})
	router := setupRouter(agentClient)

	w := postChat(t, router, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postChat(t, router, `{"message": "   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postChat(t, router, `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatHandler_GeneratorError(t *testing.T) {
	agentClient := agent.New(&fakeRetriever{}, &fakeGenerator{err: errors.New("connection refused")}, agent.Options{})
	router := setupRouter(agentClient)

	w := postChat(t, router, `{"message": "hi", "mode": "llm"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
