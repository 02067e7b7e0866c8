// Package screen defines what the root model needs from the screen it shows.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tourpref/internal/ui/layout"
)

// Screen is the content area between the header and footer. Exactly one
// screen is shown per run: the questionnaire, or the not-authenticated
// notice.
type Screen interface {
	Init() tea.Cmd

	// Update handles a message and returns the screen to keep showing.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area at the given size.
	View(width, height int) string

	// Title is shown in the header next to the app name.
	Title() string
}

// KeyHintProvider is implemented by screens whose footer hints change with
// their state.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
