// Package questionnaire is the screen that walks a tourist through one
// preference session.
package questionnaire

import (
	"context"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tourpref/internal/questionbank"
	"github.com/abhisek/tourpref/internal/screen"
	"github.com/abhisek/tourpref/internal/session"
	"github.com/abhisek/tourpref/internal/ui/components"
	"github.com/abhisek/tourpref/internal/ui/layout"
	"github.com/abhisek/tourpref/internal/ui/theme"
)

// Screen implements screen.Screen for an active questionnaire.
type Screen struct {
	ctx     context.Context
	ctrl    *session.Controller
	state   session.State
	picker  components.MultiChoice
	spinner spinner.Model
	back    components.Button
	errMsg  string
	leaving bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the screen for a started controller.
func New(ctx context.Context, ctrl *session.Controller) *Screen {
	s := &Screen{
		ctx:  ctx,
		ctrl: ctrl,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(theme.Selected),
		),
	}
	s.back = components.NewButton("Back to profile", "p", s.leave)
	s.refresh()
	return s
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Travel Preferences"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.state.Phase {
	case session.PhaseInProgress:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "1-9/Enter", Description: "Choose"},
			{Key: "Esc", Description: "Back to profile"},
		}
	case session.PhaseSubmitting:
		return nil
	default:
		return []layout.KeyHint{
			{Key: "Enter/P", Description: "Back to profile"},
		}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case outcomeMsg:
		s.state = msg.State
		return s, nil

	case spinner.TickMsg:
		if s.state.Phase != session.PhaseSubmitting {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch s.state.Phase {
	case session.PhaseInProgress:
		if msg.String() == "esc" {
			return s, s.leave()
		}
		s.picker, _ = s.picker.Update(msg)
		if !s.picker.Chosen {
			return s, nil
		}
		return s, s.answer(s.picker.Selected)

	case session.PhaseSucceeded, session.PhaseFailed:
		var cmd tea.Cmd
		s.back, cmd = s.back.Update(msg)
		return s, cmd
	}
	return s, nil
}

// answer records the choice and, when it was the last one, starts watching
// the submission.
func (s *Screen) answer(option int) tea.Cmd {
	s.errMsg = ""
	if err := s.ctrl.Answer(s.ctx, option); err != nil {
		s.errMsg = err.Error()
	}
	s.refresh()

	if s.state.Phase == session.PhaseSubmitting || s.state.Phase.Terminal() {
		return tea.Batch(s.spinner.Tick, waitForOutcome(s.ctrl))
	}
	return nil
}

func (s *Screen) leave() tea.Cmd {
	if s.leaving {
		return nil
	}
	s.leaving = true
	ctrl, ctx := s.ctrl, s.ctx
	return func() tea.Msg {
		ctrl.Leave(ctx)
		return leftMsg{}
	}
}

// refresh pulls the controller state and rebuilds the picker.
func (s *Screen) refresh() {
	s.state = s.ctrl.Snapshot()
	if s.state.HasQuestion {
		s.picker = components.NewMultiChoice(s.state.Question.Text, optionTexts(s.state.Question))
	}
}

func waitForOutcome(ctrl *session.Controller) tea.Cmd {
	return func() tea.Msg {
		<-ctrl.Done()
		return outcomeMsg{State: ctrl.Snapshot()}
	}
}

func optionTexts(q questionbank.Question) []string {
	out := make([]string, len(q.Options))
	for i, o := range q.Options {
		out[i] = o.Text
	}
	return out
}
