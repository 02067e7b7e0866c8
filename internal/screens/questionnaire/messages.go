package questionnaire

import "github.com/abhisek/tourpref/internal/session"

// outcomeMsg is sent when the submission reaches a terminal state.
type outcomeMsg struct {
	State session.State
}

// leftMsg is sent after the controller navigated away.
type leftMsg struct{}
