package quiz

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptiq/internal/analysis"
	"github.com/abhisek/adaptiq/internal/assessment"
	"github.com/abhisek/adaptiq/internal/screens/flow"
	"github.com/abhisek/adaptiq/internal/session"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func testQuestions() []assessment.Question {
	return []assessment.Question{
		{
			ID:            "q-1",
			Text:          "What do mitochondria produce?",
			Options:       []string{"ATP", "DNA", "Lipids", "Starch"},
			CorrectAnswer: "ATP",
			Difficulty:    assessment.Easy,
			Topic:         "Organelles",
			Explanation:   "Mitochondria generate ATP through cellular respiration.",
		},
		{
			ID:            "q-2",
			Text:          "Where does the Krebs cycle occur?",
			Options:       []string{"Cytoplasm", "Nucleus", "Matrix", "Ribosome"},
			CorrectAnswer: "Matrix",
			Difficulty:    assessment.Hard,
			Topic:         "Respiration",
		},
	}
}

func newQuiz(t *testing.T) (*QuizScreen, *session.Session, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	sess := session.New(session.Account{Email: "ada@example.com", Name: "ada"}, clock.Now)
	require.NoError(t, sess.Start(testQuestions()))
	s := New(sess)
	s.Init()
	return s, sess, clock
}

func TestQuiz_AnswerShowsFeedback(t *testing.T) {
	s, sess, clock := newQuiz(t)
	assert.Equal(t, "Question 1 of 2", s.Title())

	clock.Advance(7 * time.Second)
	s.Update(keyPress('1'))
	s.Update(enter())

	require.NotNil(t, s.feedback)
	assert.True(t, s.feedback.IsCorrect)
	assert.Equal(t, 7, s.feedback.ResponseTime)
	assert.Contains(t, s.View(100, 40), "Correct")
	assert.Contains(t, s.View(100, 40), "cellular respiration")

	answered, _ := sess.Progress()
	assert.Equal(t, 1, answered)
}

func TestQuiz_WrongAnswerRevealsCorrectOption(t *testing.T) {
	s, _, _ := newQuiz(t)

	s.Update(keyPress('2'))
	s.Update(enter())

	require.NotNil(t, s.feedback)
	assert.False(t, s.feedback.IsCorrect)
	assert.Equal(t, "DNA", s.feedback.SelectedAnswer)
	assert.Contains(t, s.View(100, 40), "The answer is: ATP")
}

func TestQuiz_AnyKeyAdvancesAndLastFinishes(t *testing.T) {
	s, _, _ := newQuiz(t)

	s.Update(enter())
	_, cmd := s.Update(keyPress(' '))
	assert.Nil(t, cmd)
	assert.Equal(t, "q-2", s.question.ID)
	assert.Equal(t, "Question 2 of 2", s.Title())

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(enter())
	_, cmd = s.Update(keyPress('n'))
	require.NotNil(t, cmd)

	done, ok := cmd().(flow.AssessmentDoneMsg)
	require.True(t, ok)
	require.NotNil(t, done.Report)
	assert.Equal(t, 2, done.Report.Total)
	assert.Equal(t, 2, done.Report.CorrectCount)
	assert.Equal(t, analysis.Expert, done.Report.Standing)
}

func TestQuiz_FinishEarlyNeedsAnAnswer(t *testing.T) {
	s, _, _ := newQuiz(t)

	_, cmd := s.Update(keyPress('x'))
	assert.Nil(t, cmd, "nothing to analyze before the first answer")

	s.Update(enter())
	s.Update(keyPress(' '))

	_, cmd = s.Update(keyPress('x'))
	require.NotNil(t, cmd)
	done, ok := cmd().(flow.AssessmentDoneMsg)
	require.True(t, ok)
	assert.Equal(t, 1, done.Report.Total)
}

func TestQuiz_KeyHintsFollowState(t *testing.T) {
	s, _, _ := newQuiz(t)
	assert.Equal(t, "1-4", s.KeyHints()[0].Key)

	s.Update(enter())
	assert.Equal(t, "Any key", s.KeyHints()[0].Key)
}
