package textgen_test

import (
	"context"
	"testing"

	"github.com/forge-ai/textforge/internal/dispatch"
	"github.com/forge-ai/textforge/internal/textgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBackend struct {
	prompts []string
	text    string
}

func (b *recordingBackend) Generate(_ context.Context, prompt string) (string, error) {
	b.prompts = append(b.prompts, prompt)
	return b.text, nil
}

func newService(t *testing.T, b *recordingBackend) *textgen.Service {
	t.Helper()

	d, err := dispatch.New("gemini", dispatch.Entry{ID: "gemini", Name: "Gemini", Model: "g-1", Backend: b})
	require.NoError(t, err)
	return textgen.New(d)
}

func TestGenerate_WithSubjectText(t *testing.T) {
	b := &recordingBackend{text: "A fox jumps."}
	svc := newService(t, b)

	res, err := svc.Generate(context.Background(), textgen.Request{
		Instruction: "Summarize",
		SubjectText: "The quick brown fox...",
	})

	require.NoError(t, err)
	assert.Equal(t, "A fox jumps.", res.Text)
	require.Len(t, b.prompts, 1)
	assert.Equal(t,
		"Summarize to the following text: The quick brown fox.... Please return only the final response and no additional context.",
		b.prompts[0])
}

func TestGenerate_WithoutSubjectText(t *testing.T) {
	b := &recordingBackend{text: "*Autumn* leaves"}
	svc := newService(t, b)

	res, err := svc.Generate(context.Background(), textgen.Request{Instruction: "Write a haiku"})

	require.NoError(t, err)
	assert.Equal(t, "Autumn leaves", res.Text)
	assert.Equal(t,
		"Generated new text based on prompt: Prompt: Write a haiku. Please return only the final response and no additional context.",
		b.prompts[0])
}

func TestGenerate_MissingInstruction(t *testing.T) {
	b := &recordingBackend{}
	svc := newService(t, b)

	_, err := svc.Generate(context.Background(), textgen.Request{SubjectText: "text"})

	assert.ErrorIs(t, err, dispatch.InvalidInput)
	assert.Empty(t, b.prompts)
}

func TestGenerate_UnknownProvider(t *testing.T) {
	b := &recordingBackend{}
	svc := newService(t, b)

	_, err := svc.Generate(context.Background(), textgen.Request{Instruction: "hi", ProviderID: "unknown-provider"})

	assert.ErrorIs(t, err, dispatch.InvalidProvider)
	assert.Empty(t, b.prompts)
}

func TestProviders(t *testing.T) {
	svc := newService(t, &recordingBackend{})

	assert.Equal(t, "gemini", svc.DefaultProvider())
	assert.Equal(t, []dispatch.Info{{ID: "gemini", Name: "Gemini", Model: "g-1"}}, svc.Providers())
}
