package session

import (
	"fmt"

	"github.com/abhisek/tourpref/internal/questionbank"
)

// Phase is the lifecycle position of a questionnaire session.
type Phase int

const (
	PhaseInProgress Phase = iota // Serving questions
	PhaseSubmitting              // All answered, submission in flight
	PhaseSucceeded               // Submission accepted (terminal)
	PhaseFailed                  // Submission failed (terminal)
)

func (p Phase) String() string {
	switch p {
	case PhaseInProgress:
		return "in-progress"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Terminal reports whether no further transitions can happen.
func (p Phase) Terminal() bool {
	return p == PhaseSucceeded || p == PhaseFailed
}

// Destination is a place outside the questionnaire the user can be sent to.
type Destination int

const (
	DestinationHome    Destination = iota // Landing / sign-in
	DestinationProfile                    // The tourist's profile
)

func (d Destination) String() string {
	switch d {
	case DestinationHome:
		return "home"
	case DestinationProfile:
		return "profile"
	default:
		return fmt.Sprintf("Destination(%d)", int(d))
	}
}

// Navigator moves the user out of the questionnaire.
type Navigator interface {
	Navigate(to Destination)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(to Destination)

func (f NavigatorFunc) Navigate(to Destination) { f(to) }

// State is a point-in-time view of a session for the presentation layer.
type State struct {
	SessionID string
	TouristID string

	// Question is the question awaiting an answer; valid only when
	// HasQuestion is true (PhaseInProgress).
	Question    questionbank.Question
	HasQuestion bool

	// Index is the 0-based position of the current question.
	Index    int
	Total    int
	Answered int

	Phase Phase

	// FailureMessage is the user-facing text for PhaseFailed.
	FailureMessage string

	// Err is the submission error for PhaseFailed.
	Err error

	Scores Scores
}
