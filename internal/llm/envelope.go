package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// envelopeKey holds the array when a vendor only accepts object-rooted
// structured output (OpenAI json_schema, Anthropic output format).
const envelopeKey = "items"

var fencePattern = regexp.MustCompile("```(?:json|JSON)?\\n?|\\n?```")

// StripCodeFences removes the markdown code fences models wrap around JSON
// even when asked for bare JSON.
func StripCodeFences(s string) string {
	return strings.TrimSpace(fencePattern.ReplaceAllString(s, ""))
}

// objectRooted returns the schema definition to send to an object-only
// vendor and whether the array had to be wrapped.
func objectRooted(s *Schema) (map[string]any, bool) {
	if !s.IsArray() {
		return s.Definition, false
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			envelopeKey: s.Definition,
		},
		"required":             []any{envelopeKey},
		"additionalProperties": false,
	}, true
}

// unwrapEnvelope pulls the array back out of {"items": [...]}. Models
// sometimes ignore the envelope and send the bare array; that is accepted.
func unwrapEnvelope(raw json.RawMessage) (json.RawMessage, error) {
	body := bytes.TrimSpace(raw)
	if len(body) > 0 && body[0] == '[' {
		return body, nil
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	inner, ok := env[envelopeKey]
	if !ok {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("reply has no %q field", envelopeKey)}
	}
	return inner, nil
}

// structuredReply turns vendor text into the payload the caller asked for:
// fences stripped, unwrapped when the request was enveloped, then checked
// against schema. Without a schema the text passes through untouched.
func structuredReply(schema *Schema, wrapped bool, text string) (json.RawMessage, error) {
	if schema == nil {
		return json.RawMessage(strings.TrimSpace(text)), nil
	}
	content := json.RawMessage(StripCodeFences(text))
	if wrapped {
		inner, err := unwrapEnvelope(content)
		if err != nil {
			return nil, err
		}
		content = inner
	}
	if err := validateResponse(schema, content); err != nil {
		return nil, err
	}
	return content, nil
}
