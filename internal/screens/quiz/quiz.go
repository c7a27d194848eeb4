package quiz

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/assessment"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/screens/flow"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/ui/components"
	"github.com/abhisek/adaptiq/internal/ui/layout"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// QuizScreen shows one question at a time and records the learner's
// answer with the session. After each answer it shows feedback until a key
// is pressed.
type QuizScreen struct {
	sess *session.Session

	question assessment.Question
	choice   components.MultiChoice
	feedback *session.Attempt
	errMsg   string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen over a session that has started its assessment.
func New(sess *session.Session) *QuizScreen {
	return &QuizScreen{sess: sess}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.next()
}

func (s *QuizScreen) Title() string {
	answered, total := s.sess.Progress()
	if s.feedback == nil && answered < total {
		answered++
	}
	return fmt.Sprintf("Question %d of %d", answered, total)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.feedback != nil {
		return []layout.KeyHint{
			{Key: "Any key", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "1-4", Description: "Pick"},
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Confirm"},
	}
	if answered, _ := s.sess.Progress(); answered > 0 {
		hints = append(hints, layout.KeyHint{Key: "x", Description: "Finish now"})
	}
	return hints
}

// next loads the current question, or finishes when none remain.
func (s *QuizScreen) next() tea.Cmd {
	q, ok := s.sess.Current()
	if !ok {
		return s.finish()
	}
	s.question = q
	s.choice = components.NewMultiChoice(q.Options, q.CorrectAnswer)
	s.feedback = nil
	s.errMsg = ""
	s.sess.Present()
	return nil
}

func (s *QuizScreen) finish() tea.Cmd {
	report, err := s.sess.Report()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return func() tea.Msg { return flow.AssessmentDoneMsg{Report: report} }
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.feedback != nil {
		return s, s.next()
	}

	if kmsg.String() == "x" {
		if answered, _ := s.sess.Progress(); answered > 0 {
			return s, s.finish()
		}
		return s, nil
	}

	s.choice, _ = s.choice.Update(msg)
	if !s.choice.Submitted {
		return s, nil
	}

	attempt, err := s.sess.RecordAttempt(s.question.ID, s.choice.Chosen())
	if err != nil {
		s.errMsg = err.Error()
		s.choice = components.NewMultiChoice(s.question.Options, s.question.CorrectAnswer)
		return s, nil
	}
	s.feedback = &attempt
	return s, nil
}

func (s *QuizScreen) View(width, height int) string {
	cw := min(width-4, 76)
	answered, total := s.sess.Progress()

	var b strings.Builder

	bar := components.Meter{Label: "Progress", Done: answered, Total: total, Width: cw, Counter: true}
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	b.WriteString(theme.Label.Render(strings.ToUpper(s.question.Topic)))
	b.WriteString("  ")
	b.WriteString(difficultyBadge(s.question.Difficulty))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw).Render(s.question.Text))
	b.WriteString("\n\n")
	b.WriteString(s.choice.View(cw))

	if s.feedback != nil {
		b.WriteString("\n")
		if s.feedback.IsCorrect {
			b.WriteString(theme.Correct.Render("✓ Correct"))
		} else {
			b.WriteString(theme.Incorrect.Render("✗ Not quite. The answer is: " + s.question.CorrectAnswer))
		}
		b.WriteString(theme.Muted.Render(fmt.Sprintf("   %ds", s.feedback.ResponseTime)))
		if s.question.Explanation != "" {
			b.WriteString("\n\n")
			b.WriteString(theme.Body.Width(cw).Render(s.question.Explanation))
		}
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, lipgloss.NewStyle().Padding(1, 0).Render(b.String()))
}

func difficultyBadge(d assessment.Difficulty) string {
	c := theme.Accent
	switch d {
	case assessment.Easy:
		c = theme.Success
	case assessment.Hard:
		c = theme.Error
	}
	return theme.Badge(strings.ToUpper(string(d)), c)
}
