package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Models tried in priority order. The first variant that answers wins; a
// failed variant never aborts the sequence except for a rejected credential.
var defaultModels = []string{
	"sonar-pro",
	"sonar",
	"sonar-reasoning",
	"sonar-deep-research",
	"r1-1776",
}

// searchModels get web_search_options attached; r1-1776 is offline.
var searchModels = map[string]bool{
	"sonar-pro":           true,
	"sonar":               true,
	"sonar-reasoning":     true,
	"sonar-deep-research": true,
}

var (
	// ErrNoAPIKey means no credential is configured; no request was sent.
	ErrNoAPIKey = errors.New("perplexity api key is not configured")
	// ErrUnauthorized means the configured credential was rejected (401).
	ErrUnauthorized = errors.New("perplexity api key rejected")
	// ErrRateLimited means every usable variant hit the rate limit (429).
	ErrRateLimited = errors.New("perplexity rate limit exceeded")
	// ErrAllModelsFailed means no variant produced a reply.
	ErrAllModelsFailed = errors.New("all perplexity models failed")
)

const (
	maxTokens      = 500
	temperature    = 0.3
	requestTimeout = 30 * time.Second
)

// Client is a client for the Perplexity chat completions API.
type Client struct {
	apiKey     string
	apiURL     string
	models     []string
	httpClient *http.Client
}

// NewClient creates a new Perplexity API client. The key may be empty, in
// which case Complete fails immediately with ErrNoAPIKey.
func NewClient(apiKey, apiURL string) *Client {
	return &Client{
		apiKey: apiKey,
		apiURL: apiURL,
		models: defaultModels,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Configured reports whether an API credential is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Complete sends the conversation to the API, trying each model variant in
// order, and returns the reply text together with the model that produced it.
func (c *Client) Complete(ctx context.Context, system, user string) (string, string, error) {
	if c.apiKey == "" {
		return "", "", ErrNoAPIKey
	}

	rateLimited := false

	for _, model := range c.models {
		reply, err := c.complete(ctx, model, system, user)
		if err == nil {
			log.Printf("Perplexity model %s answered", model)
			return reply, model, nil
		}
		if errors.Is(err, ErrUnauthorized) {
			// The remaining variants share the credential; no point retrying.
			return "", "", err
		}
		if errors.Is(err, ErrRateLimited) {
			rateLimited = true
		}
		log.Printf("Perplexity model %s failed: %v", model, err)
	}

	if rateLimited {
		return "", "", ErrRateLimited
	}
	return "", "", ErrAllModelsFailed
}

func (c *Client) complete(ctx context.Context, model, system, user string) (string, error) {
	reqBody := map[string]interface{}{
		"model": model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"max_tokens":  maxTokens,
		"temperature": temperature,
		"stream":      false,
	}
	if searchModels[model] {
		reqBody["web_search_options"] = map[string]interface{}{
			"search_context_size":      "medium",
			"top_k":                    3,
			"return_related_questions": false,
			"search_recency_filter":    "month",
		}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// handled below
	case http.StatusUnauthorized:
		return "", ErrUnauthorized
	case http.StatusTooManyRequests:
		return "", ErrRateLimited
	default:
		// 400 means the payload does not suit this model, 403 means the plan
		// does not permit it; both just disqualify this variant.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return "", fmt.Errorf("perplexity api error: status=%d body=%s", resp.StatusCode, string(body))
	}

	var apiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	return apiResp.Choices[0].Message.Content, nil
}
