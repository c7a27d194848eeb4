package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// MultiChoice is a single-answer option picker. Options can be reached with
// the arrow keys or by their number; Enter confirms the highlighted one.
type MultiChoice struct {
	Options     []string
	Correct     string
	Selected    int
	Submitted   bool
	ChosenIndex int
}

// NewMultiChoice creates a picker over options. correct is the option text
// that counts as right and is only used for feedback rendering.
func NewMultiChoice(options []string, correct string) MultiChoice {
	return MultiChoice{
		Options:     options,
		Correct:     correct,
		ChosenIndex: -1,
	}
}

// Update handles keyboard navigation and confirmation.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted || len(m.Options) == 0 {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Options) {
				m.Selected = i
			}
		}
	}

	return m, nil
}

// Chosen returns the confirmed option text, or "" before Enter.
func (m MultiChoice) Chosen() string {
	if !m.Submitted || m.ChosenIndex < 0 || m.ChosenIndex >= len(m.Options) {
		return ""
	}
	return m.Options[m.ChosenIndex]
}

// IsCorrect returns true if the confirmed option is the correct one.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.Chosen() == m.Correct
}

// View renders the options. After confirmation the correct option is shown
// in green and a wrong pick in red.
func (m MultiChoice) View(width int) string {
	var b strings.Builder

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d. %s", prefix, i+1, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.Submitted && opt == m.Correct:
			style = theme.Correct
		case m.Submitted && i == m.ChosenIndex:
			style = theme.Incorrect
		case m.Submitted:
			style = theme.Muted
		case i == m.Selected:
			style = theme.Selected
		}
		if width > 0 {
			style = style.Width(width)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}
