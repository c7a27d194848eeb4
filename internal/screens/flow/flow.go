package flow

import (
	"github.com/abhisek/adaptiq/internal/analysis"
	"github.com/abhisek/adaptiq/internal/session"
)

// Messages that move the learner between screens. Screens emit them and
// the app model decides which screen comes next.

// LoggedInMsg is sent when the login form produced an account.
type LoggedInMsg struct {
	Account session.Account
}

// AssessmentReadyMsg is sent when questions were generated and the
// session has started the assessment.
type AssessmentReadyMsg struct{}

// AssessmentDoneMsg is sent when the last question was answered or the
// learner stopped early with at least one answer.
type AssessmentDoneMsg struct {
	Report *analysis.Report
}

// RestartMsg asks for a fresh assessment over the same material.
type RestartMsg struct{}

// SignOutMsg discards the session and returns to the login form.
type SignOutMsg struct{}
