package login

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/screens/flow"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/ui/components"
	"github.com/abhisek/adaptiq/internal/ui/layout"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

const (
	fieldEmail = iota
	fieldPassword
	fieldName
	fieldCount
)

// LoginScreen collects the learner's email, password and display name.
// Nothing is verified; the password is masked and then dropped.
type LoginScreen struct {
	inputs [fieldCount]components.TextInput
	focus  int
	errMsg string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen, optionally prefilled with an email.
func New(email string) *LoginScreen {
	s := &LoginScreen{}
	s.inputs[fieldEmail] = components.NewTextInput("Email", "you@example.com", false, 254)
	s.inputs[fieldPassword] = components.NewTextInput("Password", "any password", true, 128)
	s.inputs[fieldName] = components.NewTextInput("Name (optional)", "taken from your email if blank", false, 64)
	if email != "" {
		s.inputs[fieldEmail].Model.SetValue(email)
	}
	s.inputs[fieldEmail].Focus()
	return s
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.inputs[s.focus].Focus()
}

func (s *LoginScreen) Title() string {
	return "Sign in"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return s, s.moveFocus(1)
		case "shift+tab", "up":
			return s, s.moveFocus(-1)
		case "enter":
			if s.focus < fieldCount-1 {
				return s, s.moveFocus(1)
			}
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *LoginScreen) moveFocus(delta int) tea.Cmd {
	s.inputs[s.focus].Blur()
	s.focus = (s.focus + delta + fieldCount) % fieldCount
	return s.inputs[s.focus].Focus()
}

func (s *LoginScreen) submit() tea.Cmd {
	account, err := session.Login(
		s.inputs[fieldEmail].Value(),
		s.inputs[fieldPassword].Model.Value(),
		s.inputs[fieldName].Value(),
	)
	if err != nil {
		s.errMsg = err.Error()
		s.inputs[s.focus].Blur()
		s.focus = fieldEmail
		return s.inputs[fieldEmail].Focus()
	}
	s.errMsg = ""
	return func() tea.Msg { return flow.LoggedInMsg{Account: account} }
}

func (s *LoginScreen) View(width, height int) string {
	cw := min(width-4, 56)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("Welcome to adaptiq"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw).Render("Sign in to start an assessment"))
	b.WriteString("\n\n")

	for i := range s.inputs {
		b.WriteString(s.inputs[i].View())
		b.WriteString("\n\n")
	}

	if s.errMsg != "" {
		b.WriteString(theme.ErrorText.Render(s.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(theme.Hint.Render("Your account lives only as long as this session."))

	card := theme.Card.Width(cw).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
