// Package layout draws the chrome around every TUI screen: a header bar,
// a footer of key hints and the body in between.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// Smallest terminal the quiz screens fit in.
const (
	MinWidth  = 72
	MinHeight = 22
)

type KeyHint struct {
	Key         string
	Description string
}

// QuitHint is the footer shown when a screen has no hints of its own.
var QuitHint = []KeyHint{{Key: "Ctrl+C", Description: "Quit"}}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small.\n\nResize to at least %d x %d\n(currently %d x %d)",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg))
}

// Frame is the chrome for one render. Who is the signed-in learner and
// may be empty.
type Frame struct {
	Title string
	Who   string
	Hints []KeyHint
}

var bar = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border).
	Padding(0, 1)

// Header puts the product name left, the screen title in the middle and
// the learner on the right.
func (f Frame) Header(width int) string {
	inner := max(width-bar.GetHorizontalFrameSize(), 0)
	third := inner / 3

	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Width(third).Render("adaptiq")
	title := lipgloss.NewStyle().Foreground(theme.Text).Width(inner - 2*third).Align(lipgloss.Center).Render(f.Title)
	who := ""
	if f.Who != "" {
		who = lipgloss.NewStyle().Foreground(theme.Accent).Render("● " + f.Who)
	}
	who = lipgloss.NewStyle().Width(third).Align(lipgloss.Right).Render(who)

	return bar.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, brand, title, who))
}

func (f Frame) Footer(width int) string {
	hints := f.Hints
	if len(hints) == 0 {
		hints = QuitHint
	}
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar.Width(width).Render(strings.Join(parts, "   "))
}

// Compose stacks header, body and footer into exactly height lines. body
// is called with the space left between the bars.
func (f Frame) Compose(width, height int, body func(width, height int) string) string {
	header := f.Header(width)
	footer := f.Footer(width)
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := lipgloss.NewStyle().Width(width).Height(bodyHeight).MaxHeight(bodyHeight).
		Render(body(width, bodyHeight))
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}
