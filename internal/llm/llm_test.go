package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/forge-ai/textforge/internal/config"
	"github.com/forge-ai/textforge/internal/dispatch"
	"github.com/forge-ai/textforge/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_KnownVendors(t *testing.T) {
	for _, v := range config.Vendors {
		b, err := llm.New(config.ProviderConfig{ID: "x", Vendor: v, APIKey: "k", Model: "m"}, nil)
		require.NoError(t, err, v)
		assert.NotNil(t, b)
	}
}

func TestNew_VendorDefaultsToID(t *testing.T) {
	b, err := llm.New(config.ProviderConfig{ID: "anthropic", APIKey: "k", Model: "m"}, nil)
	require.NoError(t, err)
	assert.NotNil(t, b)
}

func TestNew_UnknownVendor(t *testing.T) {
	_, err := llm.New(config.ProviderConfig{ID: "x", Vendor: "cohere"}, nil)
	assert.EqualError(t, err, `unsupported AI vendor "cohere" for provider "x"`)
}

func TestNewDispatcher_RoutesToConfiguredBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-test:generateContent", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{"parts": []map[string]any{{"text": "**done**"}}},
			}},
		})
	}))
	t.Cleanup(srv.Close)

	cfg := config.Config{
		DefaultProvider: "gemini",
		HTTPTimeout:     5 * time.Second,
		Providers: []config.ProviderConfig{
			{ID: "gemini", Name: "Gemini", Vendor: "gemini", APIKey: "k", Model: "gemini-test", BaseURL: srv.URL},
			{ID: "gpt", Name: "GPT", Vendor: "openai", APIKey: "k", Model: "gpt-test"},
		},
	}

	d, err := llm.NewDispatcher(cfg)
	require.NoError(t, err)
	assert.Equal(t, []dispatch.Info{
		{ID: "gemini", Name: "Gemini", Model: "gemini-test"},
		{ID: "gpt", Name: "GPT", Model: "gpt-test"},
	}, d.Providers())

	res, err := d.Dispatch(context.Background(), "", "p")
	require.NoError(t, err)
	assert.Equal(t, "done", res.Text)
}

func TestNewDispatcher_UpstreamDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	d, err := llm.NewDispatcher(config.Config{
		DefaultProvider: "gemini",
		HTTPTimeout:     time.Second,
		Providers:       []config.ProviderConfig{{ID: "gemini", APIKey: "k", Model: "m", BaseURL: url}},
	})
	require.NoError(t, err)

	_, err = d.Dispatch(context.Background(), "gemini", "p")
	assert.ErrorIs(t, err, dispatch.UpstreamUnavailable)
}

func TestNewDispatcher_PropagatesVendorError(t *testing.T) {
	_, err := llm.NewDispatcher(config.Config{
		Providers: []config.ProviderConfig{{ID: "x", Vendor: "nope"}},
	})
	assert.Error(t, err)
}
