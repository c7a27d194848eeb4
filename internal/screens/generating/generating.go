package generating

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/assessment"
	"github.com/abhisek/adaptiq/internal/material"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/screens/flow"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/ui/layout"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// generatedMsg carries the outcome of Session.Generate.
type generatedMsg struct {
	Questions []assessment.Question
	Err       error
}

// spinnerTickMsg animates the spinner while the model works.
type spinnerTickMsg time.Time

// GeneratingScreen runs one generation for the session and reports the
// outcome. On failure the learner may retry or sign out.
type GeneratingScreen struct {
	ctx      context.Context
	sess     *session.Session
	gen      assessment.Generator
	material material.Material
	config   assessment.QuizConfig

	frame   int
	running bool
	err     error
}

var _ screen.Screen = (*GeneratingScreen)(nil)
var _ screen.KeyHintProvider = (*GeneratingScreen)(nil)

// New creates a GeneratingScreen.
func New(ctx context.Context, sess *session.Session, gen assessment.Generator, m material.Material, cfg assessment.QuizConfig) *GeneratingScreen {
	return &GeneratingScreen{
		ctx:      ctx,
		sess:     sess,
		gen:      gen,
		material: m,
		config:   cfg,
	}
}

func (s *GeneratingScreen) Init() tea.Cmd {
	return s.start()
}

func (s *GeneratingScreen) Title() string {
	return "Building your assessment"
}

func (s *GeneratingScreen) KeyHints() []layout.KeyHint {
	if s.err != nil {
		return []layout.KeyHint{
			{Key: "r", Description: "Retry"},
			{Key: "s", Description: "Sign out"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *GeneratingScreen) start() tea.Cmd {
	s.running = true
	s.err = nil
	return tea.Batch(s.generate(), spinnerTick())
}

func (s *GeneratingScreen) generate() tea.Cmd {
	ctx, sess, gen, m, cfg := s.ctx, s.sess, s.gen, s.material, s.config
	return func() tea.Msg {
		questions, err := sess.Generate(ctx, gen, m, cfg)
		return generatedMsg{Questions: questions, Err: err}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *GeneratingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTickMsg:
		if !s.running {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, spinnerTick()

	case generatedMsg:
		s.running = false
		if errors.Is(msg.Err, session.ErrDiscarded) {
			return s, nil
		}
		if msg.Err != nil {
			s.err = msg.Err
			return s, nil
		}
		return s, func() tea.Msg { return flow.AssessmentReadyMsg{} }

	case tea.KeyMsg:
		if s.err == nil {
			return s, nil
		}
		switch msg.String() {
		case "r":
			return s, s.start()
		case "s":
			return s, func() tea.Msg { return flow.SignOutMsg{} }
		}
	}
	return s, nil
}

func (s *GeneratingScreen) View(width, height int) string {
	cw := min(width-4, 64)
	var b strings.Builder

	if s.err != nil {
		b.WriteString(theme.Incorrect.Render("Could not build the assessment"))
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Width(cw - 6).Render(s.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Press r to try again or s to sign out."))
	} else {
		spinner := lipgloss.NewStyle().Foreground(theme.Primary).Render(spinnerFrames[s.frame])
		b.WriteString(spinner + " " + theme.Body.Render("Reading your material and writing questions..."))
		b.WriteString("\n\n")
		b.WriteString(theme.Muted.Render(fmt.Sprintf("%d questions · %s", s.config.Count, s.config.Level)))
		if s.material.File != nil && s.material.File.Name != "" {
			b.WriteString("\n")
			b.WriteString(theme.Muted.Render("from " + s.material.File.Name))
		}
	}

	card := theme.Card.Width(cw).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
