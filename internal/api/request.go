package api

import (
	"bytes"
	"encoding/json"

	"github.com/forge-ai/textforge/internal/dispatch"
	"github.com/forge-ai/textforge/internal/textgen"
)

const (
	msgNoJSON        = "No JSON data provided"
	msgInvalidJSON   = "Invalid JSON format"
	msgInvalidPrompt = "Invalid or missing 'prompt' field"
)

// DecodeRequest parses {"prompt": ..., "data": ..., "model": ...}.
// An empty body, null or an empty object count as no data. Unknown keys
// are ignored, so a queue payload carrying request_id decodes too.
func DecodeRequest(body []byte) (textgen.Request, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return textgen.Request{}, dispatch.NewInvalidInput(msgNoJSON)
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return textgen.Request{}, dispatch.NewInvalidInput(msgInvalidJSON)
	}
	obj, ok := raw.(map[string]any)
	if !ok || len(obj) == 0 {
		return textgen.Request{}, dispatch.NewInvalidInput(msgNoJSON)
	}

	instruction, ok := obj["prompt"].(string)
	if !ok || instruction == "" {
		return textgen.Request{}, dispatch.NewInvalidInput(msgInvalidPrompt)
	}

	subject, err := optionalString(obj, "data")
	if err != nil {
		return textgen.Request{}, err
	}
	model, err := optionalString(obj, "model")
	if err != nil {
		return textgen.Request{}, err
	}

	return textgen.Request{Instruction: instruction, SubjectText: subject, ProviderID: model}, nil
}

func optionalString(obj map[string]any, key string) (string, error) {
	v, present := obj[key]
	if !present || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", dispatch.NewInvalidInput("Invalid '" + key + "' field: must be a string")
	}
	return s, nil
}
