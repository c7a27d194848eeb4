package assessment

import (
	"fmt"
	"strings"
)

// OptionCount is the number of choices every question carries.
const OptionCount = 4

// StructuralValidator checks that required fields are present, that the
// options are usable and that enum values are known.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, _ QuizConfig) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	if strings.TrimSpace(q.Text) == "" {
		return fail("text is empty")
	}
	if len(q.Options) != OptionCount {
		return fail("expected %d options, got %d", OptionCount, len(q.Options))
	}
	seen := make(map[string]bool, len(q.Options))
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fail("option %d is empty", i+1)
		}
		if seen[opt] {
			return fail("option %q appears more than once", opt)
		}
		seen[opt] = true
	}
	if !seen[q.CorrectAnswer] {
		return fail("correctAnswer %q is not one of the options", q.CorrectAnswer)
	}
	if !q.Difficulty.Valid() {
		return fail("difficulty %q must be easy, medium or hard", q.Difficulty)
	}
	if strings.TrimSpace(q.Topic) == "" {
		return fail("topic is empty")
	}
	return nil
}
