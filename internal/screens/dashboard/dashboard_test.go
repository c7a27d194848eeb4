package dashboard

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptiq/internal/analysis"
	"github.com/abhisek/adaptiq/internal/assessment"
	"github.com/abhisek/adaptiq/internal/screens/flow"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testReport() *analysis.Report {
	return &analysis.Report{
		Accuracy:        50,
		CorrectCount:    1,
		Total:           2,
		AvgResponseTime: 12,
		TopicBreakdown: map[string]analysis.Breakdown{
			"Organelles":  {Total: 1, Correct: 1, AvgResponseTime: 8},
			"Respiration": {Total: 1, Correct: 0, AvgResponseTime: 16},
		},
		DifficultyBreakdown: map[assessment.Difficulty]analysis.Breakdown{
			assessment.Easy: {Total: 1, Correct: 1, AvgResponseTime: 8},
			assessment.Hard: {Total: 1, Correct: 0, AvgResponseTime: 16},
		},
		WeakTopics:  []string{"Respiration"},
		TimeBuckets: analysis.TimeBuckets{Fast: 1, Slow: 1},
		Standing:    analysis.Emerging,
	}
}

func TestDashboard_ViewShowsReport(t *testing.T) {
	s := New(testReport(), "ada")
	view := s.View(100, 50)

	for _, want := range []string{"Nice work, ada", "50%", "Emerging", "1 / 2 correct", "Organelles", "Respiration", "easy", "hard", "Focus areas"} {
		assert.Contains(t, view, want)
	}
	assert.NotContains(t, view, "medium", "levels without attempts are omitted")
}

func TestDashboard_NoWeakTopics(t *testing.T) {
	r := testReport()
	r.WeakTopics = []string{}
	assert.Contains(t, New(r, "").View(100, 50), "No weak topics")
}

func TestDashboard_Keys(t *testing.T) {
	s := New(testReport(), "ada")

	_, cmd := s.Update(keyPress('r'))
	require.NotNil(t, cmd)
	_, ok := cmd().(flow.RestartMsg)
	assert.True(t, ok)

	_, cmd = s.Update(keyPress('s'))
	require.NotNil(t, cmd)
	_, ok = cmd().(flow.SignOutMsg)
	assert.True(t, ok)

	_, cmd = s.Update(keyPress('q'))
	require.NotNil(t, cmd)
	_, ok = cmd().(tea.QuitMsg)
	assert.True(t, ok)

	_, cmd = s.Update(keyPress('z'))
	assert.Nil(t, cmd)
}

func TestSortedTopics(t *testing.T) {
	got := sortedTopics(map[string]analysis.Breakdown{"b": {}, "a": {}, "c": {}})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}
