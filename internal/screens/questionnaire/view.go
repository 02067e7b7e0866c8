package questionnaire

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tourpref/internal/session"
	"github.com/abhisek/tourpref/internal/ui/components"
	"github.com/abhisek/tourpref/internal/ui/theme"
)

const introText = "These questions help us learn your travel preferences and tailor " +
	"your recommendations. Whether you lean towards nature, culture, adventure or " +
	"relaxing, a few quick answers make the suggestions you receive far more relevant."

// introMinHeight is the content height below which the intro is hidden.
const introMinHeight = 26

func (s *Screen) View(width, height int) string {
	cardWidth := min(width-4, 80)

	var body string
	switch s.state.Phase {
	case session.PhaseInProgress:
		body = s.renderQuestion(cardWidth)
	case session.PhaseSubmitting:
		body = s.spinner.View() + " " + theme.Body.Render("Sending preferences...")
	case session.PhaseSucceeded:
		body = s.renderSuccess(cardWidth)
	case session.PhaseFailed:
		body = s.renderFailure()
	}

	var b strings.Builder
	b.WriteString("\n")
	if s.state.Phase == session.PhaseInProgress && height >= introMinHeight {
		b.WriteString(lipgloss.NewStyle().
			Width(cardWidth).
			Foreground(theme.TextDim).
			Render(introText))
		b.WriteString("\n\n")
	}
	b.WriteString(theme.Card.Width(cardWidth).Render(body))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (s *Screen) renderQuestion(width int) string {
	var b strings.Builder
	b.WriteString(s.picker.View(width - 6))

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(s.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(components.QuestionProgress{
		Current: s.state.Index + 1,
		Total:   s.state.Total,
		Width:   width - 6,
	}.View())
	return b.String()
}

func (s *Screen) renderSuccess(width int) string {
	var b strings.Builder
	b.WriteString(theme.SuccessText.Render("Thanks for answering!"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width - 6).
		Foreground(theme.TextDim).
		Render("Your preferences have been saved. You can keep exploring or adjust your choices later."))
	b.WriteString("\n\n")

	if top := session.BuildSummary(s.state).Top(3); len(top) > 0 {
		b.WriteString(theme.Body.Render("You seem to enjoy:"))
		b.WriteString("\n")
		for _, cs := range top {
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				theme.Selected.Render(fmt.Sprintf("%2d", cs.Score)),
				theme.Body.Render(cs.Label)))
		}
		b.WriteString("\n")
	}

	b.WriteString(s.back.View())
	return b.String()
}

func (s *Screen) renderFailure() string {
	var b strings.Builder
	b.WriteString(theme.ErrorText.Render("Error sending: " + s.state.FailureMessage))
	b.WriteString("\n\n")
	b.WriteString(s.back.View())
	return b.String()
}
