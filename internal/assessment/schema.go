package assessment

import "github.com/abhisek/adaptiq/internal/llm"

// QuestionListSchema describes the JSON array the model must reply with.
// Strict generation sends it as the structured-output schema and checks
// the reply against it again locally.
var QuestionListSchema = &llm.Schema{
	Name:        "assessment-questions",
	Description: "A list of multiple-choice questions drawn from study material",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{
					"type":        "string",
					"minLength":   1,
					"description": "The question prompt",
				},
				"options": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"minItems":    OptionCount,
					"maxItems":    OptionCount,
					"description": "Exactly four distinct answer choices",
				},
				"correctAnswer": map[string]any{
					"type":        "string",
					"description": "The text of the correct option",
				},
				"difficulty": map[string]any{
					"type": "string",
					"enum": []any{"easy", "medium", "hard"},
				},
				"topic": map[string]any{
					"type":        "string",
					"description": "Short topic label from the material",
				},
				"explanation": map[string]any{
					"type":        "string",
					"description": "Why the correct answer is correct, citing the material",
				},
			},
			"required": []any{"text", "options", "correctAnswer", "difficulty", "topic", "explanation"},
		},
	},
}
