package app

import tea "github.com/charmbracelet/bubbletea"

// Widget is the interface dashboard panes implement. The root model
// forwards every message to every widget; widgets filter by event type
// and source.
type Widget interface {
	// ID returns a unique identifier for this widget.
	ID() string

	// Title returns the display name shown in the widget's border.
	Title() string

	// Update handles messages directed at this widget.
	Update(msg tea.Msg) tea.Cmd

	// View renders the widget content into the given area dimensions.
	View(width, height int) string

	// MinSize returns the minimum width and height this widget requires.
	MinSize() (int, int)

	// HandleKey processes key events when this widget has focus.
	HandleKey(key tea.KeyMsg) tea.Cmd
}
