// Package anthropic is a text backend for Anthropic's Messages API.
package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/forge-ai/textforge/internal/llm/httpapi"
)

const (
	// DefaultBaseURL is the public Anthropic endpoint.
	DefaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
	maxTokens      = 4096
)

// Backend calls one Claude model.
type Backend struct {
	api         httpapi.Client
	model       string
	temperature *float64 // nil leaves the vendor default
}

// New returns a Backend. An empty baseURL selects DefaultBaseURL.
func New(baseURL, apiKey, model string, temperature *float64, client *http.Client) *Backend {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Backend{
		api: httpapi.Client{
			Provider:   "anthropic",
			BaseURL:    strings.TrimRight(baseURL, "/"),
			Auth:       httpapi.Auth{Key: apiKey, Header: "x-api-key"},
			Headers:    map[string]string{"anthropic-version": apiVersion},
			HTTP:       client,
			ParseError: parseError,
		},
		model:       model,
		temperature: temperature,
	}
}

// Generate sends prompt as a single user message and returns the
// concatenated text blocks of the reply.
func (b *Backend) Generate(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"model":      b.model,
		"max_tokens": maxTokens,
		"messages":   []map[string]string{{"role": "user", "content": prompt}},
	}
	if b.temperature != nil {
		body["temperature"] = *b.temperature
	}

	var ar struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		StopReason string `json:"stop_reason"`
	}
	if err := b.api.PostJSON(ctx, "/v1/messages", body, &ar); err != nil {
		return "", err
	}

	if ar.StopReason == "refusal" {
		return "", &httpapi.BlockedError{Provider: "anthropic", Reason: "refusal"}
	}

	var sb strings.Builder
	for _, c := range ar.Content {
		if c.Type == "" || c.Type == "text" {
			sb.WriteString(c.Text)
		}
	}
	return sb.String(), nil
}

// parseError reads {"type":"error","error":{"type":"...","message":"..."}}.
func parseError(body []byte) (string, string) {
	var e struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return "", ""
	}
	return e.Error.Type, e.Error.Message
}
