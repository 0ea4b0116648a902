// Package router holds the screen the app is showing. An assessment runs
// as a fixed sequence (quiz, then summary), so screens are replaced rather
// than stacked.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/error402-ai/intellitest/internal/screen"
	"github.com/error402-ai/intellitest/internal/ui/layout"
)

// ReplaceScreenMsg asks the router to show Screen in place of the active one.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

type Router struct {
	active  screen.Screen
	visited int
}

// New creates a Router showing initial.
func New(initial screen.Screen) *Router {
	return &Router{active: initial, visited: 1}
}

// Replace shows s and returns its Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.active = s
	r.visited++
	return s.Init()
}

func (r *Router) Active() screen.Screen {
	return r.active
}

// Visited counts the screens shown so far, the initial one included.
func (r *Router) Visited() int {
	return r.visited
}

// Update handles ReplaceScreenMsg and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(ReplaceScreenMsg); ok {
		return r.Replace(msg.Screen)
	}
	if r.active == nil {
		return nil
	}
	updated, cmd := r.active.Update(msg)
	r.active = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	if r.active == nil {
		return ""
	}
	return r.active.View(width, height)
}

// Chrome collects the header and footer content offered by the active screen.
func (r *Router) Chrome() layout.Chrome {
	var c layout.Chrome
	if r.active == nil {
		return c
	}
	c.Title = r.active.Title()
	if sp, ok := r.active.(screen.StatusProvider); ok {
		c.Status = sp.Status()
	}
	if kp, ok := r.active.(screen.KeyHintProvider); ok {
		c.Hints = kp.KeyHints()
	}
	return c
}
