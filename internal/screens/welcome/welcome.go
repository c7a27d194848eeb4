package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 400 * time.Millisecond
	taglineAt    = 900 * time.Millisecond
	autoAdvance  = 2500 * time.Millisecond
)

const bannerArt = `
  █████╗ ██████╗  █████╗ ██████╗ ████████╗██╗ ██████╗
 ██╔══██╗██╔══██╗██╔══██╗██╔══██╗╚══██╔══╝██║██╔═══██╗
 ███████║██║  ██║███████║██████╔╝   ██║   ██║██║   ██║
 ██╔══██║██║  ██║██╔══██║██╔═══╝    ██║   ██║██║▄▄ ██║
 ██║  ██║██████╔╝██║  ██║██║        ██║   ██║╚██████╔╝
 ╚═╝  ╚═╝╚═════╝ ╚═╝  ╚═╝╚═╝        ╚═╝   ╚═╝ ╚══▀▀═╝`

const bannerCompact = "A D A P T I Q"

// Banner needs this many columns; narrower terminals get the compact form.
const bannerWidth = 56

var pulse = []string{"·", "•", "●", "•"}

type tickMsg time.Time

// WelcomeScreen is the intro splash. It hands over to the next screen on
// any key press or once autoAdvance has elapsed.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	ticks        int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed += tickInterval
		w.ticks++
		if w.elapsed >= autoAdvance {
			return w, w.transition()
		}
		return w, tick()
	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (w *WelcomeScreen) View(width, height int) string {
	dot := lipgloss.NewStyle().Foreground(theme.Accent).Render(pulse[w.ticks%len(pulse)])
	sections := []string{dot}

	if w.elapsed >= bannerAt {
		sections = append(sections, "", RenderBanner(width))
	}
	if w.elapsed >= taglineAt {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
				Render("Quizzes built from your own study material"),
			"",
			theme.Hint.Italic(true).Render("press any key to start"))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// RenderBanner returns the product banner in the primary color.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
