package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validQuestion() *Question {
	return &Question{
		Text:          "Where does photosynthesis take place?",
		Options:       []string{"Chloroplasts", "Mitochondria", "Nucleus", "Ribosomes"},
		CorrectAnswer: "Chloroplasts",
		Difficulty:    Medium,
		Topic:         "Photosynthesis",
		Explanation:   "The material states it takes place in the chloroplasts.",
	}
}

func TestStructural_ValidQuestion(t *testing.T) {
	v := &StructuralValidator{}
	assert.Nil(t, v.Validate(validQuestion(), QuizConfig{}))
}

func TestStructural_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(q *Question)
		want   string
	}{
		{"empty text", func(q *Question) { q.Text = "  " }, "text is empty"},
		{"three options", func(q *Question) { q.Options = q.Options[:3] }, "expected 4 options, got 3"},
		{"five options", func(q *Question) { q.Options = append(q.Options, "Vacuole") }, "expected 4 options, got 5"},
		{"blank option", func(q *Question) { q.Options[2] = "" }, "option 3 is empty"},
		{"duplicate option", func(q *Question) { q.Options[3] = "Nucleus" }, "appears more than once"},
		{"answer not an option", func(q *Question) { q.CorrectAnswer = "Cell wall" }, "not one of the options"},
		{"unknown difficulty", func(q *Question) { q.Difficulty = "expert" }, "difficulty"},
		{"empty topic", func(q *Question) { q.Topic = "" }, "topic is empty"},
	}

	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(q)
			err := v.Validate(q, QuizConfig{})
			if assert.NotNil(t, err) {
				assert.Equal(t, "structural", err.Validator)
				assert.Contains(t, err.Message, tt.want)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty(" Hard ")
	assert.NoError(t, err)
	assert.Equal(t, Hard, d)

	_, err = ParseDifficulty("expert")
	assert.Error(t, err)
}

func TestQuizConfig_Validate(t *testing.T) {
	assert.NoError(t, QuizConfig{Count: 10, Level: Medium}.Validate())
	assert.Error(t, QuizConfig{Count: 0, Level: Medium}.Validate())
	assert.Error(t, QuizConfig{Count: 1}.Validate())
}
