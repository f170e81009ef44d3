// Package inference is a minimal client for the OpenAI Responses API,
// covering exactly what the brochure pipeline needs: blocking, non-streaming
// calls with an optional reasoning-effort hint.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const defaultBaseURL = "https://api.openai.com/v1"

// ErrMissingAPIKey is returned when a client is constructed without
// credentials.
var ErrMissingAPIKey = errors.New("missing API key")

// Client talks to the Responses API. Inference calls carry no client-side
// timeout; cancellation is the caller's context.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different endpoint, e.g. a test server
// or an OpenAI-compatible proxy.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Responses API client. An empty apiKey is a caller
// error surfaced immediately rather than on first use.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Respond performs one blocking round-trip and returns the reply text.
// Transport errors, non-success statuses, and API error objects all
// propagate as errors; there are no retries here.
func (c *Client) Respond(ctx context.Context, req Request) (string, error) {
	payload := responsesRequest{
		Model:        req.Model,
		Instructions: req.Instructions,
		Input:        req.Input,
	}
	if req.Effort != "" {
		payload.Reasoning = &reasoningConfig{Effort: string(req.Effort)}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("inference provider returned status %d: %s", resp.StatusCode, truncate(respBody, 512))
	}

	var parsed responsesResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse provider response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("inference provider error (%s): %s", parsed.Error.Code, parsed.Error.Message)
	}

	return parsed.outputText(), nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
