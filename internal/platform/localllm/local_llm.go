package localllm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"mise/internal/logger"
)

// Defaults for an LM Studio style server on the same machine.
const (
	DefaultURL   = "http://localhost:1234/v1/chat/completions"
	DefaultModel = "gemma-3-12b-it:2"
)

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	httpClient *http.Client
	apiURL     string
	model      string
	log        *logger.Logger
}

// NewClient creates a new client for the local LLM. Empty arguments fall
// back to the defaults.
func NewClient(apiURL, model string, log *logger.Logger) *Client {
	if apiURL == "" {
		apiURL = DefaultURL
	}
	if model == "" {
		model = DefaultModel
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		apiURL:     apiURL,
		model:      model,
		log:        log,
	}
}

// Request represents the request body for the local LLM.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// Message represents a message in the request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Response represents the response from the local LLM.
type Response struct {
	Choices []Choice `json:"choices"`
}

// Choice represents a choice in the response.
type Choice struct {
	Message Message `json:"message"`
}

// Generate sends prompt as a single user message and returns the first choice.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := Request{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: "You are a professional chef and food cost consultant. Answer with JSON only."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   2048,
	}

	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(reqBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received non-OK status code: %d", resp.StatusCode)
	}

	var llmResp Response
	if err := json.NewDecoder(resp.Body).Decode(&llmResp); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(llmResp.Choices) > 0 {
		c.log.Debug("LLM response: %s", llmResp.Choices[0].Message.Content)
		return llmResp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("no content found in response")
}
