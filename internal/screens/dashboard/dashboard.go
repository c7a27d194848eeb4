package dashboard

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/analysis"
	"github.com/abhisek/adaptiq/internal/assessment"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/screens/flow"
	"github.com/abhisek/adaptiq/internal/ui/components"
	"github.com/abhisek/adaptiq/internal/ui/layout"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// DashboardScreen renders a performance report.
type DashboardScreen struct {
	report *analysis.Report
	name   string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a DashboardScreen for report. name greets the learner.
func New(report *analysis.Report, name string) *DashboardScreen {
	return &DashboardScreen{report: report, name: name}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (s *DashboardScreen) Title() string {
	return "Performance"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "r", Description: "Retake"},
		{Key: "s", Description: "Sign out"},
		{Key: "q", Description: "Quit"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "r":
			return s, func() tea.Msg { return flow.RestartMsg{} }
		case "s":
			return s, func() tea.Msg { return flow.SignOutMsg{} }
		case "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	r := s.report
	if r == nil {
		return ""
	}
	cw := min(width-4, 76)

	var b strings.Builder

	heading := "Assessment complete"
	if s.name != "" {
		heading = fmt.Sprintf("Nice work, %s", s.name)
	}
	b.WriteString(theme.Title.Width(cw).Render(heading))
	b.WriteString("\n\n")

	accuracy := lipgloss.NewStyle().
		Foreground(theme.AccuracyColor(r.Accuracy)).
		Bold(true).
		Render(fmt.Sprintf("%.0f%%", r.Accuracy))
	b.WriteString(fmt.Sprintf("%s  %s   %s   %s\n",
		accuracy,
		theme.Body.Render(string(r.Standing)),
		theme.Muted.Render(fmt.Sprintf("%d / %d correct", r.CorrectCount, r.Total)),
		theme.Muted.Render(fmt.Sprintf("avg %.1fs per question", r.AvgResponseTime)),
	))
	b.WriteString(components.SplitBar(r.CorrectCount, r.Total-r.CorrectCount, cw))
	b.WriteString("\n\n")

	b.WriteString(section("Topics"))
	for _, topic := range sortedTopics(r.TopicBreakdown) {
		b.WriteString(breakdownRow(topic, r.TopicBreakdown[topic], cw))
	}
	b.WriteString("\n")

	b.WriteString(section("Difficulty"))
	for _, d := range assessment.Difficulties {
		bd, ok := r.DifficultyBreakdown[d]
		if !ok {
			continue
		}
		b.WriteString(breakdownRow(string(d), bd, cw))
	}
	b.WriteString("\n")

	b.WriteString(section("Pace"))
	b.WriteString(fmt.Sprintf("%s %d   %s %d   %s %d\n\n",
		theme.Label.Render("fast"), r.TimeBuckets.Fast,
		theme.Label.Render("optimal"), r.TimeBuckets.Optimal,
		theme.Label.Render("slow"), r.TimeBuckets.Slow,
	))

	b.WriteString(section("Focus areas"))
	if len(r.WeakTopics) == 0 {
		b.WriteString(theme.Correct.Render("No weak topics. Every topic is at 70% or better."))
	} else {
		for _, topic := range r.WeakTopics {
			b.WriteString(theme.Incorrect.Render("• " + topic))
			b.WriteString("\n")
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, lipgloss.NewStyle().Padding(1, 0).Render(b.String()))
}

func section(title string) string {
	return lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(title) + "\n"
}

func breakdownRow(label string, bd analysis.Breakdown, width int) string {
	const labelWidth = 22
	stats := fmt.Sprintf("%d/%d  %4.1fs", bd.Correct, bd.Total, bd.AvgResponseTime)
	barWidth := width - labelWidth - lipgloss.Width(stats) - 4
	bar := components.Meter{
		Done:  bd.Correct,
		Total: bd.Total,
		Width: barWidth,
		Fill:  theme.AccuracyColor(bd.Accuracy() * 100),
	}
	name := lipgloss.NewStyle().Foreground(theme.Text).Width(labelWidth).MaxWidth(labelWidth).Render(label)
	return name + "  " + bar.View() + "  " + theme.Muted.Render(stats) + "\n"
}

func sortedTopics(m map[string]analysis.Breakdown) []string {
	topics := make([]string, 0, len(m))
	for t := range m {
		topics = append(topics, t)
	}
	slices.Sort(topics)
	return topics
}
