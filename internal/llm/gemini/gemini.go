// Package gemini is a text backend for the Google Gemini generateContent API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/forge-ai/textforge/internal/llm/httpapi"
)

// DefaultBaseURL is the public Gemini endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// blockedFinish lists finish reasons that mean the reply was withheld.
var blockedFinish = map[string]bool{
	"SAFETY":             true,
	"PROHIBITED_CONTENT": true,
	"BLOCKLIST":          true,
	"SPII":               true,
	"RECITATION":         true,
}

// Backend calls one Gemini model.
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
			Provider:   "gemini",
			BaseURL:    strings.TrimRight(baseURL, "/"),
			Auth:       httpapi.Auth{Key: apiKey, Header: "x-goog-api-key"},
			HTTP:       client,
			ParseError: parseError,
		},
		model:       model,
		temperature: temperature,
	}
}

type request struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature *float64 `json:"temperature,omitempty"`
}

type response struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// Generate sends prompt as a single user turn and returns the joined text
// parts of the first candidate.
func (b *Backend) Generate(ctx context.Context, prompt string) (string, error) {
	req := request{
		Contents:         []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{Temperature: b.temperature},
	}

	var resp response
	path := fmt.Sprintf("/v1beta/models/%s:generateContent", b.model)
	if err := b.api.PostJSON(ctx, path, req, &resp); err != nil {
		return "", err
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", &httpapi.BlockedError{Provider: "gemini", Reason: resp.PromptFeedback.BlockReason}
	}
	if len(resp.Candidates) == 0 {
		return "", nil
	}

	cand := resp.Candidates[0]
	if blockedFinish[cand.FinishReason] {
		return "", &httpapi.BlockedError{Provider: "gemini", Reason: cand.FinishReason}
	}

	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

// parseError reads {"error":{"code":400,"message":"...","status":"INVALID_ARGUMENT"}}.
func parseError(body []byte) (string, string) {
	var e struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return "", ""
	}
	return e.Error.Status, e.Error.Message
}
