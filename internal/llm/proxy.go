package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/types"
)

// ProxyError represents a non-2xx response from the language-model proxy
type ProxyError struct {
	Status int
	Body   string
}

func (e *ProxyError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("proxy error (status %d): %s", e.Status, e.Body)
	}
	return fmt.Sprintf("proxy error (status %d): %s", e.Status, http.StatusText(e.Status))
}

// proxyRequest is the wire shape the proxy expects
type proxyRequest struct {
	Prompt  string         `json:"prompt"`
	History []proxyContent `json:"history"`
}

type proxyContent struct {
	Role  string      `json:"role"`
	Parts []proxyPart `json:"parts"`
}

type proxyPart struct {
	Text string `json:"text"`
}

type proxyResponse struct {
	Text string `json:"text"`
}

// ProxyClient implements Client against a language-model proxy endpoint.
// The proxy holds the provider API key; model tier selection happens
// server-side, so the tier argument is accepted but not transmitted.
type ProxyClient struct {
	url        string
	httpClient *http.Client
}

// NewProxyClient creates a client that routes generation through the proxy
func NewProxyClient(url string) *ProxyClient {
	return &ProxyClient{
		url: url,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Generate posts the prompt and formatted history to the proxy.
// The history includes the current user turn, matching the proxy contract.
func (c *ProxyClient) Generate(ctx context.Context, prompt string, history []types.ChatMessage, _ ModelTier) (string, error) {
	contents := make([]proxyContent, 0, len(history)+1)
	for _, msg := range history {
		role := "model"
		if msg.IsUser {
			role = "user"
		}
		contents = append(contents, proxyContent{
			Role:  role,
			Parts: []proxyPart{{Text: msg.Text}},
		})
	}
	contents = append(contents, proxyContent{
		Role:  "user",
		Parts: []proxyPart{{Text: prompt}},
	})

	body, err := json.Marshal(proxyRequest{Prompt: prompt, History: contents})
	if err != nil {
		return "", fmt.Errorf("failed to marshal proxy request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build proxy request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("proxy request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read proxy response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ProxyError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var parsed proxyResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse proxy response: %w", err)
	}

	return parsed.Text, nil
}

// Close is a no-op; the proxy client holds no persistent resources
func (c *ProxyClient) Close() error {
	return nil
}
