package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/error402-ai/intellitest/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24
)

const brand = "IntelliTest"

// KeyHint is a key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// QuitHint is always shown last in the footer.
var QuitHint = KeyHint{Key: "Ctrl+C", Description: "Quit"}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf("Terminal too small: %dx%d\n\n%s needs at least %dx%d",
			width, height, brand, MinWidth, MinHeight))
}

// Chrome is the header and footer drawn around the active screen.
type Chrome struct {
	Title  string
	Status string
	Hints  []KeyHint
}

// Render lays out the header, the body and the footer in a width x height
// frame. body receives the space left between header and footer.
func (c Chrome) Render(width, height int, body func(width, height int) string) string {
	if IsTooSmall(width, height) {
		return RenderMinSizeMessage(width, height)
	}

	header := c.header(width)
	footer := c.footer(width)
	bodyHeight := max(0, height-lipgloss.Height(header)-lipgloss.Height(footer))

	content := lipgloss.NewStyle().
		Width(width).
		Height(bodyHeight).
		Render(body(width, bodyHeight))

	return strings.Join([]string{header, content, footer}, "\n")
}

// header shows the brand and screen title on the left and the status on
// the right.
func (c Chrome) header(width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(brand)
	if c.Title != "" {
		left += theme.Hint.Render("  ›  ") + lipgloss.NewStyle().Foreground(theme.Text).Render(c.Title)
	}
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(c.Status)

	// Two columns of border and two of padding.
	gap := max(1, width-4-lipgloss.Width(left)-lipgloss.Width(right))
	return bar(width, " "+left+strings.Repeat(" ", gap)+right)
}

func (c Chrome) footer(width int) string {
	hints := append(append([]KeyHint(nil), c.Hints...), QuitHint)
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)+" "+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description))
	}
	return bar(width, " "+strings.Join(parts, theme.Hint.Render("  ·  ")))
}

func bar(width int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}
