package api

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/forge-ai/textforge/internal/dispatch"
	"github.com/forge-ai/textforge/internal/textgen"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slowGenerator struct {
	delay time.Duration
}

func (g slowGenerator) Generate(ctx context.Context, req textgen.Request) (dispatch.Result, error) {
	select {
	case <-time.After(g.delay):
	case <-ctx.Done():
		return dispatch.Result{}, ctx.Err()
	}
	return dispatch.Result{Text: "slow " + req.Instruction, Provider: "gemini"}, nil
}

func (slowGenerator) Providers() []dispatch.Info { return nil }
func (slowGenerator) DefaultProvider() string { return "gemini" }

func TestWS_SlowGenerationKeepsConnection(t *testing.T) {
	s := New(slowGenerator{delay: 400 * time.Millisecond})
	s.pongWait = 150 * time.Millisecond
	s.pingPeriod = 50 * time.Millisecond

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	for _, p := range []string{"one", "two"} {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"prompt": "`+p+`"}`)))

		var reply wsReply
		require.NoError(t, conn.ReadJSON(&reply), p)
		require.NotNil(t, reply.Result, p)
		assert.Equal(t, "slow "+p, *reply.Result)
	}
}
