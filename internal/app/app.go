package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/error402-ai/intellitest/internal/router"
	"github.com/error402-ai/intellitest/internal/screen"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates an AppModel showing initial.
func newAppModel(initial screen.Screen) AppModel {
	return AppModel{router: router.New(initial)}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the active screen inside the header and footer.
func (m AppModel) render() string {
	return m.router.Chrome().Render(m.width, m.height, m.router.View)
}

// Run starts the Bubble Tea program on initial and blocks until it exits.
func Run(initial screen.Screen) error {
	_, err := tea.NewProgram(newAppModel(initial)).Run()
	return err
}
