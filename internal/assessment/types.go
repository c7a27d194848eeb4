package assessment

import (
	"fmt"
	"strings"
)

// Difficulty is the requested or self-assessed level of a question.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists the known levels from easiest to hardest.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// Valid reports whether d is a known level.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// ParseDifficulty accepts a level name in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty %q: want easy, medium or hard", s)
	}
	return d, nil
}

// Question is one multiple-choice item shown to the learner.
type Question struct {
	ID string `json:"id"`

	// Text is the question prompt.
	Text string `json:"text"`

	// Options holds the four answer choices in display order.
	Options []string `json:"options"`

	// CorrectAnswer is the text of the correct option.
	CorrectAnswer string `json:"correctAnswer"`

	Difficulty Difficulty `json:"difficulty"`

	// Topic is a short label grouping related questions for analysis.
	Topic string `json:"topic"`

	// Explanation cites the material to justify the correct answer.
	Explanation string `json:"explanation"`
}

// IsCorrect reports whether selected exactly matches the correct option.
func (q Question) IsCorrect(selected string) bool {
	return selected == q.CorrectAnswer
}

// QuizConfig is what the learner asks for.
type QuizConfig struct {
	Count int        `json:"count"`
	Level Difficulty `json:"level"`
}

// DefaultQuestionCount is used when the learner does not pick a count.
const DefaultQuestionCount = 10

// Validate requires at least one question and a known level.
func (c QuizConfig) Validate() error {
	if c.Count < 1 {
		return fmt.Errorf("question count must be at least 1, got %d", c.Count)
	}
	if !c.Level.Valid() {
		return fmt.Errorf("unknown difficulty %q", c.Level)
	}
	return nil
}
