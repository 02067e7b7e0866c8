package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tourpref/internal/ui/theme"
)

// QuestionProgress renders "Question i of N" followed by a bar.
type QuestionProgress struct {
	Current int // 1-based
	Total   int
	Width   int
}

// Label returns the textual position, e.g. "Question 3 of 12".
func (p QuestionProgress) Label() string {
	return fmt.Sprintf("Question %d of %d", p.Current, p.Total)
}

// View renders the label and bar on one line.
func (p QuestionProgress) View() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.Label()) + "  "

	barWidth := p.Width - lipgloss.Width(label)
	if barWidth < 4 {
		barWidth = 4
	}

	var frac float64
	if p.Total > 0 {
		frac = float64(p.Current) / float64(p.Total)
	}
	filled := min(max(int(float64(barWidth)*frac), 0), barWidth)

	return label +
		lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
}
