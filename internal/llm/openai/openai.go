// Package openai is a text backend for OpenAI-compatible chat completion APIs.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/forge-ai/textforge/internal/llm/httpapi"
)

// DefaultBaseURL is the public OpenAI endpoint.
const DefaultBaseURL = "https://api.openai.com"

// Options tune a Backend for an OpenAI-compatible vendor.
type Options struct {
	Provider string            // Name in errors; defaults to "openai".
	Path     string            // Completions path; defaults to "/v1/chat/completions".
	Headers  map[string]string // Extra request headers.
}

// Backend calls one chat completion model.
type Backend struct {
	api         httpapi.Client
	path        string
	model       string
	temperature *float64 // nil leaves the vendor default
}

// New returns a Backend for the OpenAI API. An empty baseURL selects
// DefaultBaseURL.
func New(baseURL, apiKey, model string, temperature *float64, client *http.Client) *Backend {
	return NewCompatible(baseURL, apiKey, model, temperature, client, Options{})
}

// NewCompatible returns a Backend for any vendor speaking the OpenAI chat
// completions format.
func NewCompatible(baseURL, apiKey, model string, temperature *float64, client *http.Client, opts Options) *Backend {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if opts.Provider == "" {
		opts.Provider = "openai"
	}
	if opts.Path == "" {
		opts.Path = "/v1/chat/completions"
	}
	return &Backend{
		api: httpapi.Client{
			Provider:   opts.Provider,
			BaseURL:    strings.TrimRight(baseURL, "/"),
			Auth:       httpapi.Auth{Key: apiKey},
			Headers:    opts.Headers,
			HTTP:       client,
			ParseError: parseError,
		},
		path:        opts.Path,
		model:       model,
		temperature: temperature,
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature *float64  `json:"temperature,omitempty"`
}

type response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Refusal string `json:"refusal"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Generate sends prompt as a single user message.
func (b *Backend) Generate(ctx context.Context, prompt string) (string, error) {
	req := request{
		Model:       b.model,
		Messages:    []message{{Role: "user", Content: prompt}},
		Temperature: b.temperature,
	}

	var resp response
	if err := b.api.PostJSON(ctx, b.path, req, &resp); err != nil {
		var se *httpapi.StatusError
		if errors.As(err, &se) && isContentPolicy(se.Code) {
			return "", &httpapi.BlockedError{Provider: b.api.Provider, Reason: se.Message}
		}
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}

	choice := resp.Choices[0]
	if choice.FinishReason == "content_filter" {
		return "", &httpapi.BlockedError{Provider: b.api.Provider, Reason: "content_filter"}
	}
	if choice.Message.Refusal != "" && choice.Message.Content == "" {
		return "", &httpapi.BlockedError{Provider: b.api.Provider, Reason: choice.Message.Refusal}
	}
	return choice.Message.Content, nil
}

func isContentPolicy(code string) bool {
	return code == "content_policy_violation" || code == "content_filter"
}

// parseError reads {"error":{"message":"...","type":"...","code":"..."}}.
func parseError(body []byte) (string, string) {
	var e struct {
		Error struct {
			Message string          `json:"message"`
			Type    string          `json:"type"`
			Code    json.RawMessage `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return "", ""
	}

	var code string
	if err := json.Unmarshal(e.Error.Code, &code); err != nil || code == "" {
		code = e.Error.Type
	}
	return code, e.Error.Message
}
