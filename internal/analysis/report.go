package analysis

import (
	"fmt"

	"github.com/abhisek/adaptiq/internal/assessment"
)

// WeakTopicThreshold is the per-topic accuracy below which a topic is weak.
const WeakTopicThreshold = 0.70

// Time bucket bounds as fractions of the average response time.
const (
	FastFactor = 0.8
	SlowFactor = 1.2
)

// Standing is a coarse label for overall accuracy.
type Standing string

const (
	Expert   Standing = "Expert"
	Skilled  Standing = "Skilled"
	Emerging Standing = "Emerging"
)

// StandingFor maps an accuracy percentage to a Standing.
func StandingFor(accuracy float64) Standing {
	switch {
	case accuracy > 85:
		return Expert
	case accuracy > 60:
		return Skilled
	default:
		return Emerging
	}
}

// Breakdown aggregates attempts for one topic or difficulty.
type Breakdown struct {
	Total           int     `json:"total"`
	Correct         int     `json:"correct"`
	AvgResponseTime float64 `json:"avgResponseTime"`
}

// Accuracy returns correct/total in [0, 1].
func (b Breakdown) Accuracy() float64 {
	if b.Total == 0 {
		return 0
	}
	return float64(b.Correct) / float64(b.Total)
}

// TimeBuckets partitions attempts by pace relative to the average.
type TimeBuckets struct {
	Fast    int `json:"fast"`
	Optimal int `json:"optimal"`
	Slow    int `json:"slow"`
}

// Report is the performance summary for one session.
type Report struct {
	Accuracy            float64                             `json:"accuracy"`
	CorrectCount        int                                 `json:"correctCount"`
	Total               int                                 `json:"total"`
	AvgResponseTime     float64                             `json:"avgResponseTime"`
	TopicBreakdown      map[string]Breakdown                `json:"topicBreakdown"`
	DifficultyBreakdown map[assessment.Difficulty]Breakdown `json:"difficultyBreakdown"`
	WeakTopics          []string                            `json:"weakTopics"`
	TimeBuckets         TimeBuckets                         `json:"timeBuckets"`
	Standing            Standing                            `json:"standing"`

	// Unmatched counts attempts whose question id was not found.
	Unmatched int `json:"unmatched"`
}

// DataError is returned when there is nothing to analyze.
type DataError struct {
	Reason string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("cannot analyze performance: %s", e.Reason)
}
