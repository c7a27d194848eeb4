package session

import "errors"

var (
	// ErrGenerationInFlight is returned when a second generation starts
	// before the first finished.
	ErrGenerationInFlight = errors.New("an assessment is already being generated")

	// ErrNoQuestions is returned when generation produced nothing usable.
	ErrNoQuestions = errors.New("no questions could be extracted: please ensure the content is substantial")

	// ErrDiscarded is returned when the session was restarted or signed
	// out while the model was working.
	ErrDiscarded = errors.New("session was reset during generation")

	// ErrSignedOut is returned for operations that need an account.
	ErrSignedOut = errors.New("session is signed out")

	// ErrNotAssessing is returned when answers arrive outside the
	// assessment phase.
	ErrNotAssessing = errors.New("no assessment in progress")

	// ErrOutOfOrder is returned when the answered question is not the
	// current one.
	ErrOutOfOrder = errors.New("question is not the current question")

	// ErrAlreadyAnswered is returned for a second answer to a question.
	ErrAlreadyAnswered = errors.New("question was already answered")

	// ErrNoSelection is returned when no option was chosen.
	ErrNoSelection = errors.New("select an option before confirming")

	// ErrUnknownOption is returned when the selection is not one of the
	// question's options.
	ErrUnknownOption = errors.New("selected answer is not one of the options")

	// ErrNoAttempts is returned by Finalize and Report before any answer.
	ErrNoAttempts = errors.New("no attempts recorded")

	// ErrNotFound is returned by Registry lookups for unknown ids.
	ErrNotFound = errors.New("session not found")
)
