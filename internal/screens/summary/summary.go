package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/error402-ai/intellitest/internal/screen"
	"github.com/error402-ai/intellitest/internal/session"
	"github.com/error402-ai/intellitest/internal/ui/components"
	"github.com/error402-ai/intellitest/internal/ui/layout"
	"github.com/error402-ai/intellitest/internal/ui/theme"
)

// SummaryScreen displays the assessment summary.
type SummaryScreen struct {
	summary  *session.Summary
	resultID string
	saveErr  error
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. saveErr is shown when the result could not
// be stored.
func New(summary *session.Summary, resultID string, saveErr error) *SummaryScreen {
	return &SummaryScreen{summary: summary, resultID: resultID, saveErr: saveErr}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Assessment Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Exit"}}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder
	center := func(style lipgloss.Style, text string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(text)))
		b.WriteString("\n")
	}

	center(theme.Title, "Assessment complete")
	center(theme.Label, fmt.Sprintf("%s · %d:%02d", sum.Reason,
		int(sum.Duration.Minutes()), int(sum.Duration.Seconds())%60))
	b.WriteString("\n")

	center(theme.Body, fmt.Sprintf("Questions: %d      Correct: %d      Accuracy: %.0f%%      Final difficulty: %.1f",
		sum.TotalQuestions, sum.TotalCorrect, sum.Accuracy*100, sum.Difficulty))
	b.WriteString("\n")

	if len(sum.Levels) > 0 {
		center(theme.Label, "By level")
		center(lipgloss.NewStyle().Foreground(theme.Border), strings.Repeat("─", min(width-8, 60)))
		for _, lp := range sum.Levels {
			bar := components.NewAccuracyBar(fmt.Sprintf("%-10s %d/%d", lp.Level, lp.Correct, lp.Attempted), lp.Accuracy, min(width-8, 60))
			center(lipgloss.NewStyle(), bar.View())
		}
		b.WriteString("\n")
	}

	switch {
	case s.saveErr != nil:
		center(theme.Incorrect, "Result not saved: "+s.saveErr.Error())
	case sum.TotalQuestions > 0 && s.resultID != "":
		center(theme.Hint, "Saved as "+s.resultID+". Run `intellitest analyze` for recommendations.")
	}
	return b.String()
}
