package llm

import (
	"context"
	"encoding/json"
)

// Provider is the chat-completion boundary every model vendor sits behind.
type Provider interface {
	// Generate sends one request. With req.Schema set the provider asks for
	// structured output, checks the reply against the schema and returns
	// the payload in the schema's own shape, even when the vendor needed an
	// object envelope around an array. Without a schema Content is the raw
	// model text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request is a single generation call.
type Request struct {
	// System carries the study material and the output rules.
	System string

	Messages []Message

	// Schema is optional. See Provider.Generate.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for a model reply.
type Schema struct {
	// Name is kebab-case. It doubles as the OpenAI schema name and the
	// compiled-schema cache key.
	Name        string
	Description string
	Definition  map[string]any
}

// IsArray reports whether the schema's root is a JSON array.
func (s *Schema) IsArray() bool {
	t, _ := s.Definition["type"].(string)
	return t == "array"
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
	StopRefused   = "refused"
)

type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
