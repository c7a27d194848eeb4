package analysis

import (
	"log/slog"
	"sort"

	"github.com/abhisek/adaptiq/internal/assessment"
)

// Analyze summarizes attempts against the questions they answered. It does
// not modify its inputs and returns *DataError for an empty attempt list.
func Analyze(attempts []assessment.Attempt, questions []assessment.Question) (*Report, error) {
	return AnalyzeWithLogger(attempts, questions, slog.Default())
}

// AnalyzeWithLogger is Analyze with an explicit logger for join misses.
func AnalyzeWithLogger(attempts []assessment.Attempt, questions []assessment.Question, logger *slog.Logger) (*Report, error) {
	if len(attempts) == 0 {
		return nil, &DataError{Reason: "no attempts recorded"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	byID := make(map[string]*assessment.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	r := &Report{
		Total:               len(attempts),
		TopicBreakdown:      make(map[string]Breakdown),
		DifficultyBreakdown: make(map[assessment.Difficulty]Breakdown),
		WeakTopics:          []string{},
	}

	var totalTime int
	topicTime := make(map[string]int)
	difficultyTime := make(map[assessment.Difficulty]int)

	for _, a := range attempts {
		totalTime += a.ResponseTime
		if a.IsCorrect {
			r.CorrectCount++
		}

		q, ok := byID[a.QuestionID]
		if !ok {
			r.Unmatched++
			logger.Warn("attempt references unknown question", "question_id", a.QuestionID)
			continue
		}

		r.TopicBreakdown[q.Topic] = tally(r.TopicBreakdown[q.Topic], a)
		topicTime[q.Topic] += a.ResponseTime
		r.DifficultyBreakdown[q.Difficulty] = tally(r.DifficultyBreakdown[q.Difficulty], a)
		difficultyTime[q.Difficulty] += a.ResponseTime
	}

	r.Accuracy = 100 * float64(r.CorrectCount) / float64(r.Total)
	r.AvgResponseTime = float64(totalTime) / float64(r.Total)
	r.Standing = StandingFor(r.Accuracy)

	for topic, b := range r.TopicBreakdown {
		b.AvgResponseTime = float64(topicTime[topic]) / float64(b.Total)
		r.TopicBreakdown[topic] = b
		if b.Accuracy() < WeakTopicThreshold {
			r.WeakTopics = append(r.WeakTopics, topic)
		}
	}
	sort.Strings(r.WeakTopics)

	for d, b := range r.DifficultyBreakdown {
		b.AvgResponseTime = float64(difficultyTime[d]) / float64(b.Total)
		r.DifficultyBreakdown[d] = b
	}

	r.TimeBuckets = bucket(attempts, r.AvgResponseTime)
	return r, nil
}

func tally(b Breakdown, a assessment.Attempt) Breakdown {
	b.Total++
	if a.IsCorrect {
		b.Correct++
	}
	return b
}

// bucket sorts attempts into fast, optimal and slow. Both bounds belong to
// optimal.
func bucket(attempts []assessment.Attempt, avg float64) TimeBuckets {
	var tb TimeBuckets
	for _, a := range attempts {
		t := float64(a.ResponseTime)
		switch {
		case t < avg*FastFactor:
			tb.Fast++
		case t > avg*SlowFactor:
			tb.Slow++
		default:
			tb.Optimal++
		}
	}
	return tb
}
