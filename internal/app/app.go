package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/assessment"
	"github.com/abhisek/adaptiq/internal/material"
	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/screens/dashboard"
	"github.com/abhisek/adaptiq/internal/screens/flow"
	"github.com/abhisek/adaptiq/internal/screens/generating"
	"github.com/abhisek/adaptiq/internal/screens/login"
	"github.com/abhisek/adaptiq/internal/screens/quiz"
	"github.com/abhisek/adaptiq/internal/screens/welcome"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/ui/layout"
)

// Options configures a terminal quiz run.
type Options struct {
	Generator assessment.Generator
	Material  material.Material
	Config    assessment.QuizConfig

	// Email prefills the login form.
	Email string

	// Splash shows the intro screen before login.
	Splash bool

	Logger *slog.Logger
	Clock  func() time.Time
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctx    context.Context
	opts   Options
	router *router.Router
	sess   *session.Session
	width  int
	height int
}

func newAppModel(ctx context.Context, opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	var first screen.Screen = login.New(opts.Email)
	if opts.Splash {
		first = welcome.New(func() screen.Screen { return login.New(opts.Email) })
	}
	return AppModel{
		ctx:    ctx,
		opts:   opts,
		router: router.New(first),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case flow.LoggedInMsg:
		m.sess = session.New(msg.Account, m.opts.Clock)
		m.sess.SetLogger(m.opts.Logger)
		m.opts.Logger.Info("learner signed in", "session", m.sess.ID())
		return m, m.router.Replace(m.generatingScreen(m.opts.Material, m.opts.Config))

	case flow.AssessmentReadyMsg:
		if m.sess == nil {
			return m, nil
		}
		return m, m.router.Replace(quiz.New(m.sess))

	case flow.AssessmentDoneMsg:
		name := ""
		if m.sess != nil {
			if acct, ok := m.sess.Account(); ok {
				name = acct.Name
			}
		}
		return m, m.router.Replace(dashboard.New(msg.Report, name))

	case flow.RestartMsg:
		if m.sess == nil {
			return m, nil
		}
		m.sess.Restart()
		mat, cfg := m.sess.Material()
		return m, m.router.Replace(m.generatingScreen(mat, cfg))

	case flow.SignOutMsg:
		if m.sess != nil {
			m.opts.Logger.Info("learner signed out", "session", m.sess.ID())
			m.sess.SignOut()
			m.sess = nil
		}
		return m, m.router.Reset(login.New(""))
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) generatingScreen(mat material.Material, cfg assessment.QuizConfig) screen.Screen {
	return generating.New(m.ctx, m.sess, m.opts.Generator, mat, cfg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	frame := layout.Frame{}
	active := m.router.Active()
	if active != nil {
		frame.Title = active.Title()
	}
	if kp, ok := active.(screen.KeyHintProvider); ok {
		frame.Hints = kp.KeyHints()
	}
	if m.sess != nil {
		if acct, ok := m.sess.Account(); ok {
			frame.Who = acct.Name
		}
	}
	v.SetContent(frame.Compose(m.width, m.height, m.router.View))
	return v
}

// Run starts the terminal quiz and blocks until the learner quits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
