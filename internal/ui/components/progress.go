package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// Meter is a horizontal bar showing Done out of Total.
type Meter struct {
	Label string
	Done  int
	Total int
	Width int

	// Counter appends "done/total" after the bar.
	Counter bool

	// Fill colours the completed part; nil means theme.Secondary.
	Fill color.Color
}

// Fraction is Done/Total clamped to [0,1]. An empty meter is 0.
func (m Meter) Fraction() float64 {
	if m.Total <= 0 {
		return 0
	}
	return min(max(float64(m.Done)/float64(m.Total), 0), 1)
}

func (m Meter) View() string {
	var head, tail string
	if m.Label != "" {
		head = lipgloss.NewStyle().Foreground(theme.Text).Render(m.Label) + "  "
	}
	if m.Counter {
		tail = theme.Muted.Render(fmt.Sprintf("  %d/%d", m.Done, m.Total))
	}

	width := max(m.Width-lipgloss.Width(head)-lipgloss.Width(tail), 4)
	fill := m.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	filled := int(float64(width) * m.Fraction())
	return head + segment(fill, filled) + segment(theme.Border, width-filled) + tail
}

// SplitBar renders a two-tone bar with the left share in green and the
// right share in red. Both counts zero renders an empty track.
func SplitBar(left, right, width int) string {
	width = max(width, 2)
	total := left + right
	if total <= 0 {
		return segment(theme.Border, width)
	}
	l := width * left / total
	if left > 0 && l == 0 {
		l = 1
	}
	if right > 0 && l == width {
		l = width - 1
	}
	return segment(theme.Success, l) + segment(theme.Error, width-l)
}

func segment(c color.Color, n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Background(c).Render(strings.Repeat(" ", n))
}
