// Package notauth is shown when nobody is signed in. It waits briefly and
// then hands control back so the user can be sent home.
package notauth

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tourpref/internal/screen"
	"github.com/abhisek/tourpref/internal/ui/theme"
)

// RedirectDelay is how long the message stays up before redirecting.
const RedirectDelay = 1500 * time.Millisecond

type redirectMsg struct{}

// Screen displays the not-authenticated notice.
type Screen struct {
	onRedirect func() tea.Cmd
	redirected bool
}

var _ screen.Screen = (*Screen)(nil)

// New creates the screen; onRedirect runs once, after RedirectDelay or on
// any key press.
func New(onRedirect func() tea.Cmd) *Screen {
	return &Screen{onRedirect: onRedirect}
}

func (s *Screen) Init() tea.Cmd {
	return tea.Tick(RedirectDelay, func(time.Time) tea.Msg {
		return redirectMsg{}
	})
}

func (s *Screen) Title() string {
	return ""
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case redirectMsg, tea.KeyPressMsg:
		return s, s.redirect()
	}
	return s, nil
}

func (s *Screen) redirect() tea.Cmd {
	if s.redirected || s.onRedirect == nil {
		return nil
	}
	s.redirected = true
	return s.onRedirect()
}

func (s *Screen) View(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Body.Render("Not authenticated. Redirecting..."))
}
