package assessment

import "time"

// Attempt is one learner response to one question.
type Attempt struct {
	QuestionID     string     `json:"questionId"`
	SelectedAnswer string     `json:"selectedAnswer"`
	IsCorrect      bool       `json:"isCorrect"`
	ResponseTime   int        `json:"responseTime"` // whole seconds
	Difficulty     Difficulty `json:"difficulty"`
	Timestamp      time.Time  `json:"timestamp"`
}

// NewAttempt records selected as the answer to q. Negative elapsed time is
// clamped to zero and fractions of a second are truncated.
func NewAttempt(q Question, selected string, elapsed time.Duration, at time.Time) Attempt {
	secs := int(elapsed / time.Second)
	if secs < 0 {
		secs = 0
	}
	return Attempt{
		QuestionID:     q.ID,
		SelectedAnswer: selected,
		IsCorrect:      q.IsCorrect(selected),
		ResponseTime:   secs,
		Difficulty:     q.Difficulty,
		Timestamp:      at,
	}
}
