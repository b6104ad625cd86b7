package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/forge-ai/textforge/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestFromContext_UsesStoredLogger(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf).With().Str("request_id", "abc").Logger()
	ctx := l.WithContext(context.Background())

	logging.FromContext(ctx).Info().Msg("hello")

	assert.Contains(t, buf.String(), `"request_id":"abc"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestFromContext_FallsBackToGlobal(t *testing.T) {
	assert.Same(t, &log.Logger, logging.FromContext(context.Background()))
}

func TestSetup_DebugLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	logging.Setup("json", true)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	logging.Setup("console", false)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
