// Package openrouter is a text backend for OpenRouter, which fronts many
// vendors behind an OpenAI-compatible API.
package openrouter

import (
	"net/http"

	"github.com/forge-ai/textforge/internal/llm/openai"
)

const (
	// DefaultBaseURL is the public OpenRouter endpoint.
	DefaultBaseURL = "https://openrouter.ai"
	appReferer     = "https://github.com/forge-ai/textforge"
	appTitle       = "textforge"
)

// New returns an OpenAI-compatible backend configured for OpenRouter.
func New(baseURL, apiKey, model string, temperature *float64, client *http.Client) *openai.Backend {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return openai.NewCompatible(baseURL, apiKey, model, temperature, client, openai.Options{
		Provider: "openrouter",
		Path:     "/api/v1/chat/completions",
		Headers: map[string]string{
			"HTTP-Referer": appReferer,
			"X-Title":      appTitle,
		},
	})
}
