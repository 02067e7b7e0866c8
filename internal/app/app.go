package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tourpref/internal/screen"
	"github.com/abhisek/tourpref/internal/screens/notauth"
	"github.com/abhisek/tourpref/internal/screens/questionnaire"
	"github.com/abhisek/tourpref/internal/session"
	"github.com/abhisek/tourpref/internal/ui/layout"
)

// Options holds dependencies for the TUI.
type Options struct {
	Ctx context.Context

	// Controller is the started session; nil shows the not-authenticated
	// screen.
	Controller *session.Controller

	// Navigator receives the program's send function so navigation from
	// the session ends the program.
	Navigator *Navigator
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	active    screen.Screen
	touristID string
	width     int
	height    int
}

// newAppModel creates an AppModel on the questionnaire, or on the
// not-authenticated notice when there is no session.
func newAppModel(opts Options) AppModel {
	ctx := opts.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	var initial screen.Screen
	var touristID string
	if opts.Controller == nil {
		initial = notauth.New(func() tea.Cmd { return tea.Quit })
	} else {
		initial = questionnaire.New(ctx, opts.Controller)
		touristID = opts.Controller.TouristID()
	}

	return AppModel{
		active:    initial,
		touristID: touristID,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case NavigateMsg:
		return m, tea.Quit

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.active, cmd = m.active.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.frame())
	v.AltScreen = true
	return v
}

// frame renders header, active screen and footer for the current size.
func (m AppModel) frame() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	header := layout.RenderHeader(m.active.Title(), m.touristID, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if p, ok := m.active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			footerHints = append(hints, footerHints...)
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.active.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if opts.Navigator != nil {
		opts.Navigator.attach(p.Send)
	}
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
