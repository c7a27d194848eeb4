package assessment

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/adaptiq/internal/llm"
)

var (
	// ErrEmptyReply is returned when the model sent no content.
	ErrEmptyReply = errors.New("model returned an empty reply")

	// ErrNotArray is returned when the reply parses but is not a JSON array.
	ErrNotArray = errors.New("model reply is not a JSON array")
)

// decodeReply returns the cleaned JSON body and one raw message per question.
func decodeReply(content string) (json.RawMessage, []json.RawMessage, error) {
	body := json.RawMessage(llm.StripCodeFences(content))
	if len(body) == 0 {
		return nil, nil, ErrEmptyReply
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, nil, fmt.Errorf("parse reply: %w", err)
	}
	if _, ok := v.([]any); !ok {
		return nil, nil, ErrNotArray
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, nil, fmt.Errorf("parse reply: %w", err)
	}
	return body, items, nil
}

// decodeQuestion decodes one item; any id the model supplied is discarded.
func decodeQuestion(raw json.RawMessage, index int) (Question, error) {
	var q Question
	if err := json.Unmarshal(raw, &q); err != nil {
		return Question{}, fmt.Errorf("question %d: %w", index, err)
	}
	q.ID = ""
	return q, nil
}
