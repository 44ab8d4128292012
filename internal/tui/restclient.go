package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const chatRequestTimeout = 150 * time.Second

// manages HTTP requests to the chat REST API
type ChatClient struct {
	endpoint   string
	httpClient *http.Client
}

// creates a new chat REST client
func NewChatClient() *ChatClient {
	endpoint := os.Getenv("BROOFFLINE_API_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:5000"
	}

	return &ChatClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: chatRequestTimeout,
		},
	}
}

type chatRequest struct {
	Message string `json:"message"`
	Mode    string `json:"mode,omitempty"`
}

type chatResponse struct {
	Mode     string `json:"mode"`
	Response string `json:"response"`
	Sources  []struct {
		DocName      string `json:"doc_name"`
		SectionTitle string `json:"section_title"`
		Path         string `json:"path"`
	} `json:"sources"`
}

type reloadResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// sends a chat message and returns the answer
func (c *ChatClient) Chat(ctx context.Context, message, mode string) (*ChatResponseMsg, error) {
	body, err := c.postJSON(ctx, "/chat", chatRequest{Message: message, Mode: mode})
	if err != nil {
		return nil, err
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	sources := make([]string, 0, len(result.Sources))
	for _, source := range result.Sources {
		if source.SectionTitle != "" {
			sources = append(sources, fmt.Sprintf("%s — %s", source.DocName, source.SectionTitle))
		} else {
			sources = append(sources, source.DocName)
		}
	}

	return &ChatResponseMsg{
		userQuery: message,
		answer:    result.Response,
		mode:      result.Mode,
		sources:   sources,
	}, nil
}

// asks the server to rebuild the document index
func (c *ChatClient) ReloadDocs(ctx context.Context) (string, error) {
	body, err := c.postJSON(ctx, "/reload-docs", struct{}{})
	if err != nil {
		return "", err
	}

	var result reloadResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return result.Message, nil
}

func (c *ChatClient) postJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return nil, fmt.Errorf("%s: %s", errResp.Error, errResp.Message)
		}

		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// returns a tea.Cmd that sends a chat request
func (c *ChatClient) ChatCmd(message, mode string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chatRequestTimeout)
		defer cancel()

		resp, err := c.Chat(ctx, message, mode)
		if err != nil {
			return ChatErrorMsg{err: err}
		}

		return *resp
	}
}

// returns a tea.Cmd that triggers a docs reload
func (c *ChatClient) ReloadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chatRequestTimeout)
		defer cancel()

		message, err := c.ReloadDocs(ctx)
		if err != nil {
			return ChatErrorMsg{err: err}
		}

		return ReloadDoneMsg{message: message}
	}
}
