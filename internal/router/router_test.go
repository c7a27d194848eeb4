package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/adaptiq/internal/screen"
)

type fakeScreen struct {
	name    string
	inits   int
	got     []tea.Msg
	replyTo screen.Screen
}

type pingMsg struct{}

func (f *fakeScreen) Init() tea.Cmd {
	f.inits++
	return func() tea.Msg { return pingMsg{} }
}

func (f *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	f.got = append(f.got, msg)
	if f.replyTo != nil {
		return f.replyTo, nil
	}
	return f, nil
}

func (f *fakeScreen) View(int, int) string { return f.name }
func (f *fakeScreen) Title() string        { return f.name }

func TestReplace_RunsInitAndCountsSteps(t *testing.T) {
	login := &fakeScreen{name: "login"}
	r := New(login)
	assert.Equal(t, 1, r.Steps())

	quiz := &fakeScreen{name: "quiz"}
	cmd := r.Replace(quiz)

	assert.Same(t, quiz, r.Active())
	assert.Equal(t, 1, quiz.inits)
	assert.Zero(t, login.inits)
	assert.Equal(t, pingMsg{}, cmd())
	assert.Equal(t, 2, r.Steps())
}

func TestReset_RestartsSteps(t *testing.T) {
	r := New(&fakeScreen{name: "login"})
	r.Replace(&fakeScreen{name: "generating"})
	r.Replace(&fakeScreen{name: "quiz"})

	fresh := &fakeScreen{name: "login"}
	r.Reset(fresh)
	assert.Same(t, fresh, r.Active())
	assert.Equal(t, 1, r.Steps())
	assert.Equal(t, 1, fresh.inits)
}

func TestUpdate_NavigationMessages(t *testing.T) {
	first := &fakeScreen{name: "first"}
	r := New(first)

	second := &fakeScreen{name: "second"}
	r.Update(ReplaceScreenMsg{Screen: second})
	assert.Same(t, second, r.Active())
	assert.Empty(t, first.got, "navigation is not forwarded")

	third := &fakeScreen{name: "third"}
	r.Update(ResetScreenMsg{Screen: third})
	assert.Same(t, third, r.Active())
	assert.Equal(t, 1, r.Steps())
}

func TestUpdate_ForwardsToActive(t *testing.T) {
	after := &fakeScreen{name: "after"}
	before := &fakeScreen{name: "before", replyTo: after}
	r := New(before)

	r.Update(pingMsg{})
	assert.Equal(t, []tea.Msg{pingMsg{}}, before.got)
	assert.Same(t, after, r.Active(), "screen returned from Update becomes active")
	assert.Equal(t, 1, r.Steps())
}

func TestView(t *testing.T) {
	assert.Equal(t, "quiz", New(&fakeScreen{name: "quiz"}).View(80, 24))
	assert.Empty(t, New(nil).View(80, 24))
}
