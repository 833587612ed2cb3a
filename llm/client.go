// Package llm generates trade verdicts, strategy suggestions and weekly
// recaps with Groq's OpenAI-compatible chat completions API. Every caller
// must be prepared for the service to be unconfigured or failing and carry
// a deterministic fallback.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	groqURL      = "https://api.groq.com/openai/v1"
	defaultModel = "llama-3.3-70b-versatile"
)

type Client struct {
	url        string
	apiKey     string
	model      string
	httpClient *http.Client
}

func New(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		url:    groqURL,
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func NewForTest(url string) *Client {
	c := New("test-key", "")
	c.url = url
	return c
}

// Available reports whether an API key is configured. When false, callers
// should go straight to their fallback instead of calling.
func (c *Client) Available() bool {
	return c != nil && c.apiKey != ""
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message      message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func (c *Client) chat(ctx context.Context, system, user string, temperature float64, maxTokens int, jsonOutput bool) (string, error) {
	if !c.Available() {
		return "", fmt.Errorf("llm service is not configured")
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	if jsonOutput {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	body, err := json.Marshal(&reqBody)
	if err != nil {
		return "", fmt.Errorf("error encoding chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/chat/completions", c.url), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error creating chat request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error sending chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("unexpected status code %d from llm: %s", resp.StatusCode, b)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("error parsing chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat response contained no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
