package app

import (
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tourpref/internal/session"
)

// NavigateMsg tells the root model the session sent the user elsewhere.
type NavigateMsg struct {
	To session.Destination
}

// Navigator implements session.Navigator for the TUI. It remembers the last
// destination so the caller can report it after the program exits.
type Navigator struct {
	mu   sync.Mutex
	dest *session.Destination
	send func(tea.Msg)
}

var _ session.Navigator = (*Navigator)(nil)

// NewNavigator creates a detached navigator.
func NewNavigator() *Navigator {
	return &Navigator{}
}

func (n *Navigator) Navigate(to session.Destination) {
	n.mu.Lock()
	n.dest = &to
	send := n.send
	n.mu.Unlock()

	if send != nil {
		send(NavigateMsg{To: to})
	}
}

// Destination returns where the user was last sent.
func (n *Navigator) Destination() (session.Destination, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.dest == nil {
		return 0, false
	}
	return *n.dest, true
}

func (n *Navigator) attach(send func(tea.Msg)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.send = send
}
