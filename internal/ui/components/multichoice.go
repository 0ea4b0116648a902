package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/error402-ai/intellitest/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. Options can be picked with the
// arrow keys or by number.
type MultiChoice struct {
	Options   []string
	Selected  int
	Submitted bool
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options}
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = len(m.Options) > 0
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Options) {
				m.Selected = i
				m.Submitted = true
			}
		}
	}
	return m, nil
}

// Choice returns the selected option's 1-based number as the answer text,
// which the answer checker accepts for MCQs.
func (m MultiChoice) Choice() string {
	return fmt.Sprint(m.Selected + 1)
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		style := theme.Unselected
		if i == m.Selected {
			prefix = "> "
			style = theme.Selected
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%d) %s", prefix, i+1, opt)))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("\nSelect with 1-9 or arrows + Enter"))
	return b.String()
}
