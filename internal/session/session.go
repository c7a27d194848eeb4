package session

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/abhisek/adaptiq/internal/analysis"
	"github.com/abhisek/adaptiq/internal/assessment"
	"github.com/abhisek/adaptiq/internal/material"
	"github.com/google/uuid"
)

// Attempt is one recorded answer.
type Attempt = assessment.Attempt

// Phase is where the learner is in the flow.
type Phase int

const (
	PhaseSetup      Phase = iota // Choosing material and quiz settings
	PhaseGenerating              // Waiting on the model
	PhaseAssess                  // Answering questions
	PhaseAnalyze                 // Viewing the report
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseGenerating:
		return "generating"
	case PhaseAssess:
		return "assess"
	case PhaseAnalyze:
		return "analyze"
	}
	return "unknown"
}

// Session owns the question list and the attempt list for one learner.
// Attempts are index-aligned with questions: attempt i answers question i.
// All methods are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	id       string
	account  *Account
	material material.Material
	config   assessment.QuizConfig

	phase       Phase
	generating  bool
	epoch       int // bumped by Restart and SignOut
	questions   []assessment.Question
	attempts    []Attempt
	presentedAt time.Time

	now    func() time.Time
	logger *slog.Logger
}

// New starts a session for account. A nil clock uses time.Now.
func New(account Account, clock func() time.Time) *Session {
	if clock == nil {
		clock = time.Now
	}
	return &Session{
		id:      uuid.NewString(),
		account: &account,
		now:     clock,
		logger:  slog.Default(),
	}
}

// SetLogger replaces the logger used for session events.
func (s *Session) SetLogger(logger *slog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if logger != nil {
		s.logger = logger
	}
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// Account returns the signed-in account, or false after SignOut.
func (s *Session) Account() (Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account == nil {
		return Account{}, false
	}
	return *s.account, true
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Material returns the material of the last generation request.
func (s *Session) Material() (material.Material, assessment.QuizConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.material, s.config
}

// Generate asks gen for questions and starts the assessment with them.
// Only one generation may be in flight; the lock is not held while the
// model is working.
func (s *Session) Generate(ctx context.Context, gen assessment.Generator, m material.Material, cfg assessment.QuizConfig) ([]assessment.Question, error) {
	s.mu.Lock()
	if s.account == nil {
		s.mu.Unlock()
		return nil, ErrSignedOut
	}
	if s.generating {
		s.mu.Unlock()
		return nil, ErrGenerationInFlight
	}
	s.generating = true
	s.phase = PhaseGenerating
	s.material = m
	s.config = cfg
	epoch := s.epoch
	s.mu.Unlock()

	questions, err := gen.Generate(ctx, m, cfg)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false

	if s.epoch != epoch {
		return nil, ErrDiscarded
	}
	if err != nil {
		s.phase = PhaseSetup
		return nil, err
	}
	if len(questions) == 0 {
		s.phase = PhaseSetup
		s.logger.Warn("generation returned no questions", "session", s.id)
		return nil, ErrNoQuestions
	}

	s.start(questions)
	return slices.Clone(s.questions), nil
}

// Start begins an assessment with questions produced elsewhere.
func (s *Session) Start(questions []assessment.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account == nil {
		return ErrSignedOut
	}
	if s.generating {
		return ErrGenerationInFlight
	}
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	s.start(questions)
	return nil
}

func (s *Session) start(questions []assessment.Question) {
	s.questions = slices.Clone(questions)
	s.attempts = nil
	s.phase = PhaseAssess
	s.presentedAt = s.now()
	s.logger.Info("assessment started", "session", s.id, "questions", len(questions))
}

// Questions returns a copy of the question list.
func (s *Session) Questions() []assessment.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.questions)
}

// Attempts returns a copy of the attempts so far.
func (s *Session) Attempts() []Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.attempts)
}

// Progress returns the number answered and the number of questions.
func (s *Session) Progress() (answered, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.attempts), len(s.questions)
}

// Current returns the next unanswered question.
func (s *Session) Current() (assessment.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseAssess || len(s.attempts) >= len(s.questions) {
		return assessment.Question{}, false
	}
	return s.questions[len(s.attempts)], true
}

// Done reports whether every question has been answered.
func (s *Session) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions) > 0 && len(s.attempts) == len(s.questions)
}

// Present marks the current question as shown now. Response time is
// measured from the latest call.
func (s *Session) Present() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presentedAt = s.now()
}

// RecordAttempt answers the current question, timing it from Present.
func (s *Session) RecordAttempt(questionID, selected string) (Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record(questionID, selected, s.now().Sub(s.presentedAt))
}

// RecordAttemptElapsed answers the current question with a response time
// measured by the caller.
func (s *Session) RecordAttemptElapsed(questionID, selected string, elapsed time.Duration) (Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record(questionID, selected, elapsed)
}

func (s *Session) record(questionID, selected string, elapsed time.Duration) (Attempt, error) {
	if s.phase != PhaseAssess {
		return Attempt{}, ErrNotAssessing
	}
	for _, a := range s.attempts {
		if a.QuestionID == questionID {
			return Attempt{}, ErrAlreadyAnswered
		}
	}
	idx := len(s.attempts)
	if idx >= len(s.questions) || s.questions[idx].ID != questionID {
		return Attempt{}, ErrOutOfOrder
	}
	if selected == "" {
		return Attempt{}, ErrNoSelection
	}
	q := s.questions[idx]
	if !slices.Contains(q.Options, selected) {
		return Attempt{}, ErrUnknownOption
	}

	a := s.RecordAttemptFor(q, selected, elapsed)
	s.attempts = append(s.attempts, a)
	s.presentedAt = s.now()
	return a, nil
}

// RecordAttemptFor builds an Attempt without touching session state.
func (s *Session) RecordAttemptFor(q assessment.Question, selected string, elapsed time.Duration) Attempt {
	return assessment.NewAttempt(q, selected, elapsed, s.now())
}

// Finalize ends the assessment and returns the ordered attempts. A
// partially answered assessment can be finalized.
func (s *Session) Finalize() ([]Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalize()
}

func (s *Session) finalize() ([]Attempt, error) {
	if len(s.attempts) == 0 {
		return nil, ErrNoAttempts
	}
	s.phase = PhaseAnalyze
	return slices.Clone(s.attempts), nil
}

// Report finalizes the assessment and analyzes it.
func (s *Session) Report() (*analysis.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempts, err := s.finalize()
	if err != nil {
		return nil, err
	}
	return analysis.AnalyzeWithLogger(attempts, s.questions, s.logger)
}

// Restart discards questions and attempts but keeps the account and the
// last material so the learner can go again.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.questions = nil
	s.attempts = nil
	s.phase = PhaseSetup
}

// SignOut discards everything, including the account.
func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.account = nil
	s.material = material.Material{}
	s.config = assessment.QuizConfig{}
	s.questions = nil
	s.attempts = nil
	s.phase = PhaseSetup
}
