package prompt_test

import (
	"testing"

	"github.com/forge-ai/textforge/internal/prompt"
	"github.com/stretchr/testify/assert"
)

func TestBuild_WithSubject(t *testing.T) {
	got := prompt.Build("Summarize", "The quick brown fox...")

	assert.Equal(t,
		"Summarize to the following text: The quick brown fox.... Please return only the final response and no additional context.",
		got)
}

func TestBuild_WithoutSubject(t *testing.T) {
	got := prompt.Build("Write a haiku", "")

	assert.Equal(t,
		"Generated new text based on prompt: Prompt: Write a haiku. Please return only the final response and no additional context.",
		got)
}

func TestBuild_Substrings(t *testing.T) {
	cases := []struct {
		instruction string
		subject     string
		want        string
	}{
		{"Translate to French", "hello world", "to the following text: hello world"},
		{"Fix grammar", "  spaced  ", "to the following text:   spaced  "},
		{"Tell a joke", "", "Generated new text based on prompt: Prompt: Tell a joke"},
		{"", "", "Generated new text based on prompt: Prompt: "},
	}

	for _, tc := range cases {
		t.Run(tc.instruction, func(t *testing.T) {
			got := prompt.Build(tc.instruction, tc.subject)
			assert.Contains(t, got, tc.want)
			assert.Contains(t, got, prompt.ResponseFormatting)
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	assert.Equal(t, prompt.Build("a", "b"), prompt.Build("a", "b"))
}
