package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/error402-ai/intellitest/internal/assessment"
	"github.com/error402-ai/intellitest/internal/ui/components"
	"github.com/error402-ai/intellitest/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return centered(width, theme.Incorrect, fmt.Sprintf("\n\n\n  Error: %s\n\n  Press Ctrl+C to exit.", s.errMsg))
	case s.phase == phaseEnded:
		return centered(width, theme.Hint, "\n\n\n  Saving your results...")
	case s.showingQuit:
		return renderQuitConfirm(width)
	case s.phase == phaseFeedback, s.phase == phaseSelfMark:
		return s.renderFeedback(width)
	}
	return s.renderQuestionView(width)
}

func (s *QuizScreen) renderQuestionView(width int) string {
	q := s.question
	if q == nil {
		return ""
	}

	var b strings.Builder

	m := s.sess.Metrics()
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · difficulty %.1f", q.BloomsLevel, q.Difficulty))

	info := fmt.Sprintf("Q %d/%d", m.QuestionsAnswered+1, m.TotalQuestions)
	if remaining := s.sess.Remaining(); remaining > 0 {
		info += fmt.Sprintf("   %d:%02d", int(remaining.Minutes()), int(remaining.Seconds())%60)
	}
	infoRight := theme.Label.Render(info)

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(0, width-4))))
	b.WriteString("\n\n")

	if m.TotalQuestions > 0 {
		bar := components.NewProgressBar("Progress", float64(m.QuestionsAnswered)/float64(m.TotalQuestions), min(width-8, 60))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n\n")
	}

	text := lipgloss.NewStyle().
		Width(min(width-8, 76)).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, text))
	b.WriteString("\n\n")

	if s.isMC {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View()))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "Answer: "+s.input.View()))
	}
	return b.String()
}

func (s *QuizScreen) renderFeedback(width int) string {
	fb := s.feedback
	if fb == nil {
		return ""
	}
	q := fb.Question

	var b strings.Builder
	b.WriteString("\n\n")

	switch {
	case s.phase == phaseSelfMark:
		b.WriteString(centered(width, theme.Title, "How did you do?"))
		if q.Explanation != "" {
			b.WriteString("\n\n")
			b.WriteString(explanation(width, q.Explanation))
		}
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.Hint, "Mark your answer: [Y] correct  [N] incorrect"))
		return b.String()
	case fb.Correct:
		b.WriteString(centered(width, theme.Correct, "Correct!"))
	default:
		b.WriteString(centered(width, theme.Incorrect, "Not quite"))
		if answer := correctAnswer(q); answer != "" {
			b.WriteString("\n")
			b.WriteString(centered(width, theme.Label, "Correct answer: "+answer))
		}
	}
	b.WriteString("\n\n")

	if q.Explanation != "" {
		b.WriteString(explanation(width, q.Explanation))
		b.WriteString("\n\n")
	}

	b.WriteString(centered(width, theme.Label, fmt.Sprintf("Answered in %.0fs", fb.TimeSpent.Seconds())))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Hint, "Press any key to continue..."))
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width, theme.Title, "End assessment early?"))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Label, "Answers so far will be saved."))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Correct, "[Y] Yes, end assessment"))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Selected, "[N] No, keep going"))
	return b.String()
}

func correctAnswer(q assessment.Question) string {
	return strings.TrimSpace(q.Correct)
}

func explanation(width int, text string) string {
	exp := lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text).Render(text)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, exp)
}

func centered(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}
