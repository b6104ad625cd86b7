package anthropic_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/forge-ai/textforge/internal/llm/anthropic"
	"github.com/forge-ai/textforge/internal/llm/httpapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, status int, v any, check func(*http.Request)) *anthropic.Backend {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}))
	t.Cleanup(srv.Close)

	return anthropic.New(srv.URL, "test-key", "claude-test", temperature(0.5), srv.Client())
}

func temperature(v float64) *float64 { return &v }

func TestGenerate_SimpleText(t *testing.T) {
	b := newTestServer(t, http.StatusOK, map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": "Hello"},
			{"type": "thinking", "text": "ignored"},
			{"type": "text", "text": " world"},
		},
		"stop_reason": "end_turn",
	}, func(r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-test", req["model"])
		assert.EqualValues(t, 4096, req["max_tokens"])
		assert.InDelta(t, 0.5, req["temperature"], 1e-9)
	})

	got, err := b.Generate(context.Background(), "hi")

	require.NoError(t, err)
	assert.Equal(t, "Hello world", got)
}

func TestGenerate_Refusal(t *testing.T) {
	b := newTestServer(t, http.StatusOK, map[string]any{"content": []any{}, "stop_reason": "refusal"}, nil)

	_, err := b.Generate(context.Background(), "hi")

	var be *httpapi.BlockedError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "anthropic", be.Provider)
}

func TestGenerate_Overloaded(t *testing.T) {
	b := newTestServer(t, 529, map[string]any{
		"type":  "error",
		"error": map[string]any{"type": "overloaded_error", "message": "Overloaded"},
	}, nil)

	_, err := b.Generate(context.Background(), "hi")

	var se *httpapi.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 529, se.StatusCode)
	assert.Equal(t, "overloaded_error", se.Code)
	assert.Equal(t, "Overloaded", se.Message)
}

func TestGenerate_EmptyContent(t *testing.T) {
	b := newTestServer(t, http.StatusOK, map[string]any{"content": []any{}}, nil)

	got, err := b.Generate(context.Background(), "hi")

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGenerate_ZeroTemperatureSent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		got, has := req["temperature"]
		assert.True(t, has)
		assert.Equal(t, 0.0, got)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"content": []map[string]any{{"type": "text", "text": "ok"}}})
	}))
	t.Cleanup(srv.Close)

	got, err := anthropic.New(srv.URL, "k", "m", temperature(0), nil).Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}
