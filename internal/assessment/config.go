package assessment

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated question. They execute in order; the first failure
	// rejects the whole batch.
	Validators []Validator

	// Strict checks the reply array against QuestionListSchema before
	// decoding.
	Strict bool

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config that rejects malformed questions.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
		},
		Strict:      true,
		MaxTokens:   4000,
		Temperature: 0.7,
	}
}

// PassThroughConfig accepts whatever question objects the model returns,
// whether or not they are well formed.
func PassThroughConfig() Config {
	cfg := DefaultConfig()
	cfg.Validators = nil
	cfg.Strict = false
	return cfg
}
