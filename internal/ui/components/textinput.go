package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput is the answer box for subjective and numerical questions.
type TextInput struct {
	Model textinput.Model

	// Numeric limits input to a single signed decimal number.
	Numeric bool
}

// NewTextInput creates a focused input. limit caps the answer length when
// positive.
func NewTextInput(placeholder string, numeric bool, limit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if limit > 0 {
		ti.CharLimit = limit
	}
	ti.Focus()
	return TextInput{Model: ti, Numeric: numeric}
}

func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update passes msg to the input. In numeric mode, printable keys that
// would not extend a valid number are dropped.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && t.Numeric {
		if key := kmsg.String(); len(key) == 1 && !acceptsNumeric(t.Model.Value(), key[0]) {
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// acceptsNumeric reports whether c may be typed after current. The cursor
// is assumed to be at the end.
func acceptsNumeric(current string, c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c == '-':
		return current == ""
	case c == '.':
		return !strings.Contains(current, ".")
	}
	return false
}

func (t TextInput) View() string {
	return t.Model.View()
}

// Value returns the answer with surrounding whitespace removed.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}
