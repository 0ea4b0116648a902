package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/error402-ai/intellitest/internal/ui/theme"
)

// Bar is a horizontal fill bar followed by a percentage.
type Bar struct {
	Label    string
	Fraction float64
	Width    int

	// Graded colors the fill by theme.ScoreStyle instead of the neutral color.
	Graded bool
}

// NewProgressBar shows how far through the assessment the learner is.
func NewProgressBar(label string, fraction float64, width int) Bar {
	return Bar{Label: label, Fraction: fraction, Width: width}
}

// NewAccuracyBar shows an accuracy, colored from red to green.
func NewAccuracyBar(label string, accuracy float64, width int) Bar {
	return Bar{Label: label, Fraction: accuracy, Width: width, Graded: true}
}

func (b Bar) View() string {
	frac := min(1, max(0, b.Fraction))
	percent := fmt.Sprintf("%4.0f%%", frac*100)

	var prefix string
	if b.Label != "" {
		prefix = theme.Label.Render(b.Label) + "  "
	}
	cells := max(4, b.Width-lipgloss.Width(prefix)-len(percent)-2)
	filled := int(float64(cells)*frac + 0.5)

	fill := lipgloss.NewStyle().Foreground(theme.Secondary)
	if b.Graded {
		fill = theme.ScoreStyle(frac).UnsetBold()
	}
	return prefix +
		fill.Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", cells-filled)) +
		"  " + theme.Label.Render(percent)
}
