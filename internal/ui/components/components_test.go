package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	mc := NewMultiChoice([]string{"ATP", "DNA", "RNA", "NADH"}, "ATP")

	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 1, mc.Selected)
	assert.Empty(t, mc.Chosen())

	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.True(t, mc.Submitted)
	assert.Equal(t, "DNA", mc.Chosen())
	assert.False(t, mc.IsCorrect())
}

func TestMultiChoice_NumberKeys(t *testing.T) {
	mc := NewMultiChoice([]string{"a", "b", "c", "d"}, "d")

	mc, _ = mc.Update(keyPress('4'))
	assert.Equal(t, 3, mc.Selected)

	mc, _ = mc.Update(keyPress('9'))
	assert.Equal(t, 3, mc.Selected, "out-of-range number is ignored")

	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.True(t, mc.IsCorrect())
}

func TestMultiChoice_LockedAfterSubmit(t *testing.T) {
	mc := NewMultiChoice([]string{"a", "b"}, "a")
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	mc, _ = mc.Update(keyPress('2'))
	assert.Equal(t, 0, mc.Selected)
	assert.Equal(t, "a", mc.Chosen())
}

func TestMultiChoice_ViewNumbersOptions(t *testing.T) {
	mc := NewMultiChoice([]string{"first", "second"}, "first")
	view := mc.View(0)
	assert.Contains(t, view, "1. first")
	assert.Contains(t, view, "2. second")
}

func TestSplitBar_Width(t *testing.T) {
	for _, tc := range []struct{ left, right int }{{0, 0}, {3, 1}, {1, 99}, {99, 1}, {5, 0}} {
		assert.Equal(t, 20, lipgloss.Width(SplitBar(tc.left, tc.right, 20)), "%d/%d", tc.left, tc.right)
	}
}

func TestMeter(t *testing.T) {
	assert.Zero(t, Meter{}.Fraction())
	assert.Equal(t, 0.25, Meter{Done: 1, Total: 4}.Fraction())
	assert.Equal(t, 1.0, Meter{Done: 7, Total: 4}.Fraction())

	m := Meter{Label: "Progress", Done: 3, Total: 10, Width: 40, Counter: true}
	view := m.View()
	assert.Equal(t, 40, lipgloss.Width(view))
	assert.Contains(t, view, "Progress")
	assert.Contains(t, view, "3/10")
}

func TestTextInput_SecretMasksValue(t *testing.T) {
	ti := NewTextInput("Password", "", true, 0)
	ti.Focus()
	for _, r := range "hunter2" {
		ti, _ = ti.Update(keyPress(r))
	}
	assert.Equal(t, "hunter2", ti.Value())
	assert.NotContains(t, ti.View(), "hunter2")
}
