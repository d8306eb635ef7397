// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Init initializes the terminal user interface, triggering initial data loads
// and arming the single end-of-track waiter.
func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, b.loadPlaylists(), b.spinnerC.Tick, b.waitForTrackEnd())
}
