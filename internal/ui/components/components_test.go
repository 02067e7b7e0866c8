package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoiceArrowsAndEnter(t *testing.T) {
	m := NewMultiChoice("¿Qué prefieres?", []string{"a", "b", "c"})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Fatalf("Selected = %d, want 2 (clamped)", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !m.Chosen || m.Selected != 1 {
		t.Fatalf("Chosen = %v, Selected = %d, want true, 1", m.Chosen, m.Selected)
	}

	// Locked after choosing.
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("Selected changed after choice: %d", m.Selected)
	}
}

func TestMultiChoiceDigits(t *testing.T) {
	m := NewMultiChoice("q", []string{"a", "b", "c"})

	m, _ = m.Update(key('7'))
	if m.Chosen {
		t.Fatal("out-of-range digit must not choose")
	}

	m, _ = m.Update(key('3'))
	if !m.Chosen || m.Selected != 2 {
		t.Fatalf("Chosen = %v, Selected = %d, want true, 2", m.Chosen, m.Selected)
	}
}

func TestMultiChoiceViewNumbersOptions(t *testing.T) {
	view := NewMultiChoice("q", []string{"Buceo", "Kayak"}).View(60)
	if !strings.Contains(view, "1)  Buceo") || !strings.Contains(view, "2)  Kayak") {
		t.Errorf("view missing numbered options:\n%s", view)
	}
}

func TestQuestionProgressLabel(t *testing.T) {
	p := QuestionProgress{Current: 3, Total: 12, Width: 40}
	if p.Label() != "Question 3 of 12" {
		t.Errorf("Label() = %q", p.Label())
	}
	if !strings.Contains(p.View(), "Question 3 of 12") {
		t.Error("view should include the label")
	}
}

func TestButtonPress(t *testing.T) {
	presses := 0
	b := NewButton("Back to profile", "p", func() tea.Cmd {
		presses++
		return nil
	})
	b, _ = b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if presses != 1 || !b.Pressed() {
		t.Fatalf("presses = %d, want 1 after Enter", presses)
	}

	b, _ = b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if presses != 1 {
		t.Errorf("presses = %d, a button fires at most once", presses)
	}
	if !strings.Contains(b.View(), "Back to profile (p)") {
		t.Errorf("View() = %q", b.View())
	}
}

func TestButtonShortcutAndDisabled(t *testing.T) {
	presses := 0
	b := NewButton("Back to profile", "p", func() tea.Cmd {
		presses++
		return nil
	})

	b.Disabled = true
	b, _ = b.Update(tea.KeyPressMsg{Code: 'p', Text: "p"})
	if presses != 0 {
		t.Fatal("disabled button must ignore keys")
	}

	b.Disabled = false
	b, _ = b.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if presses != 0 {
		t.Fatal("unrelated key must not press the button")
	}
	b, _ = b.Update(tea.KeyPressMsg{Code: 'p', Text: "p"})
	if presses != 1 {
		t.Errorf("presses = %d, want 1 after shortcut", presses)
	}
}
