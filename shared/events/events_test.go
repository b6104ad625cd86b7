package events_test

import (
	"testing"

	"github.com/forge-ai/textforge/shared/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapUnwrap(t *testing.T) {
	b, err := events.Wrap(events.GenerationRequested, events.GenerationRequestedPayload{
		RequestID: "r1", Prompt: "Summarize", Data: "text",
	})
	require.NoError(t, err)

	env, p, err := events.Unwrap[events.GenerationRequestedPayload](b)
	require.NoError(t, err)
	assert.Equal(t, events.GenerationRequested, env.RoutingKey)
	assert.Len(t, env.ID, 36)
	assert.False(t, env.Timestamp.IsZero())
	assert.Equal(t, "Summarize", p.Prompt)
	assert.Equal(t, "text", p.Data)
}

func TestUnwrap_Errors(t *testing.T) {
	cases := map[string]string{
		"not json":      "nope",
		"no payload":    `{"id":"x","routing_key":"generation.requested"}`,
		"wrong payload": `{"id":"x","payload":{"prompt":5}}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := events.Unwrap[events.GenerationRequestedPayload]([]byte(raw))
			assert.Error(t, err)
		})
	}
}
