// Package router moves the TUI forward through its screens. The flow is
// linear: each screen hands over to the next and never returns.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/screen"
)

// ReplaceScreenMsg asks the router to hand over to Screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// ResetScreenMsg starts the flow over from Screen.
type ResetScreenMsg struct {
	Screen screen.Screen
}

type Router struct {
	active screen.Screen
	steps  int
}

func New(initial screen.Screen) *Router {
	return &Router{active: initial, steps: 1}
}

// Replace makes s the active screen and returns its Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.active = s
	r.steps++
	return s.Init()
}

// Reset is Replace that also restarts the step count.
func (r *Router) Reset(s screen.Screen) tea.Cmd {
	r.active = s
	r.steps = 1
	return s.Init()
}

func (r *Router) Active() screen.Screen {
	return r.active
}

// Steps counts the screens shown since the last reset, the current one
// included.
func (r *Router) Steps() int {
	return r.steps
}

// Update applies navigation messages and sends everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case ResetScreenMsg:
		return r.Reset(msg.Screen)
	}
	if r.active == nil {
		return nil
	}
	next, cmd := r.active.Update(msg)
	r.active = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if r.active == nil {
		return ""
	}
	return r.active.View(width, height)
}
