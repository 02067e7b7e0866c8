package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tourpref/internal/ui/theme"
)

// Button is a single action shown under a finished questionnaire. It fires
// on Enter, or on Shortcut when one is set.
type Button struct {
	Label    string
	Shortcut string
	Disabled bool
	OnPress  func() tea.Cmd

	pressed bool
}

// NewButton creates an enabled button.
func NewButton(label, shortcut string, onPress func() tea.Cmd) Button {
	return Button{Label: label, Shortcut: shortcut, OnPress: onPress}
}

// Pressed reports whether the button has fired. A button fires at most once.
func (b Button) Pressed() bool {
	return b.pressed
}

func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || b.Disabled || b.pressed || b.OnPress == nil {
		return b, nil
	}

	switch key := kmsg.String(); {
	case key == "enter", b.Shortcut != "" && key == b.Shortcut:
		b.pressed = true
		return b, b.OnPress()
	}
	return b, nil
}

func (b Button) View() string {
	label := "▸ " + b.Label
	if b.Shortcut != "" {
		label += " (" + b.Shortcut + ")"
	}
	if b.Disabled || b.pressed {
		return theme.ButtonInactive.Render(label)
	}
	return theme.ButtonActive.Render(label)
}
