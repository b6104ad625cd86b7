// Package prompt renders the final text sent to a language model.
package prompt

import "fmt"

// ResponseFormatting is appended to every prompt so the model answers
// without preamble.
const ResponseFormatting = "Please return only the final response and no additional context."

// Build returns the prompt for instruction. When subject is non-empty the
// instruction is applied to it; otherwise the model is asked to produce new
// text from the instruction alone.
func Build(instruction, subject string) string {
	if subject != "" {
		return fmt.Sprintf("%s to the following text: %s. %s", instruction, subject, ResponseFormatting)
	}
	return fmt.Sprintf("Generated new text based on prompt: Prompt: %s. %s", instruction, ResponseFormatting)
}
