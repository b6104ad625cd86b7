// Package llm builds provider backends from the configured provider table.
package llm

import (
	"fmt"
	"net/http"

	"github.com/forge-ai/textforge/internal/config"
	"github.com/forge-ai/textforge/internal/dispatch"
	"github.com/forge-ai/textforge/internal/llm/anthropic"
	"github.com/forge-ai/textforge/internal/llm/gemini"
	"github.com/forge-ai/textforge/internal/llm/openai"
	"github.com/forge-ai/textforge/internal/llm/openrouter"
)

// New returns the backend for p's vendor.
func New(p config.ProviderConfig, client *http.Client) (dispatch.Backend, error) {
	vendor := p.Vendor
	if vendor == "" {
		vendor = p.ID
	}

	switch vendor {
	case "gemini":
		return gemini.New(p.BaseURL, p.APIKey, p.Model, p.Temperature, client), nil
	case "openai":
		return openai.New(p.BaseURL, p.APIKey, p.Model, p.Temperature, client), nil
	case "anthropic":
		return anthropic.New(p.BaseURL, p.APIKey, p.Model, p.Temperature, client), nil
	case "openrouter":
		return openrouter.New(p.BaseURL, p.APIKey, p.Model, p.Temperature, client), nil
	default:
		return nil, fmt.Errorf("unsupported AI vendor %q for provider %q", vendor, p.ID)
	}
}

// NewDispatcher wires every configured provider into a Dispatcher. All
// backends share one HTTP client with cfg.HTTPTimeout.
func NewDispatcher(cfg config.Config) (*dispatch.Dispatcher, error) {
	client := &http.Client{Timeout: cfg.HTTPTimeout}

	entries := make([]dispatch.Entry, 0, len(cfg.Providers))
	for _, p := range cfg.Providers {
		b, err := New(p, client)
		if err != nil {
			return nil, err
		}
		entries = append(entries, dispatch.Entry{ID: p.ID, Name: p.Name, Model: p.Model, Backend: b})
	}
	return dispatch.New(cfg.DefaultProvider, entries...)
}
