package llm

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateContent_QuestionList(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		valid bool
	}{
		{"well formed", oneQuestion, true},
		{"empty array", `[]`, false},
		{"three options", `[{"text":"Q","options":["a","b","c"],"correctAnswer":"a","difficulty":"easy","topic":"T","explanation":"E"}]`, false},
		{"unknown difficulty", `[{"text":"Q","options":["a","b","c","d"],"correctAnswer":"a","difficulty":"expert","topic":"T","explanation":"E"}]`, false},
		{"missing explanation", `[{"text":"Q","options":["a","b","c","d"],"correctAnswer":"a","difficulty":"hard","topic":"T"}]`, false},
		{"blank text", `[{"text":"","options":["a","b","c","d"],"correctAnswer":"a","difficulty":"hard","topic":"T","explanation":"E"}]`, false},
		{"object root", `{"items":[]}`, false},
		{"malformed", `[{`, false},
		{"empty body", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContent(quizSchema(), json.RawMessage(tt.body))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var invalid *ErrInvalidResponse
			assert.True(t, errors.As(err, &invalid), "got %v", err)
		})
	}
}

func TestValidateContent_NilSchema(t *testing.T) {
	assert.NoError(t, ValidateContent(nil, json.RawMessage(`not even json`)))
}

func TestValidateContent_KeepsOffendingBody(t *testing.T) {
	body := json.RawMessage(`[{"text":"Q"}]`)
	err := ValidateContent(quizSchema(), body)

	var invalid *ErrInvalidResponse
	if assert.True(t, errors.As(err, &invalid)) {
		assert.Equal(t, body, invalid.Content)
		assert.Contains(t, invalid.Error(), "test-quiz")
	}
}

func TestValidateContent_CachesCompiledSchema(t *testing.T) {
	s := &Schema{Name: "test-cache", Definition: map[string]any{"type": "integer"}}
	assert.NoError(t, ValidateContent(s, json.RawMessage(`3`)))

	_, ok := compiled.Load("test-cache")
	assert.True(t, ok)
	assert.Error(t, ValidateContent(s, json.RawMessage(`"three"`)))
}
