package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chesterbait88/NV-Stats/pkg/collectors"
	"github.com/chesterbait88/NV-Stats/pkg/theme"
)

// KeyMap defines the key bindings for the dashboard. It implements
// help.KeyMap so the bubbles help component can render hints.
type KeyMap struct {
	Quit  key.Binding
	Help  key.Binding
	Theme key.Binding
	Focus key.Binding
}

// DefaultKeyMap returns the standard dashboard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus"),
		),
	}
}

// ShortHelp returns the bindings shown in the one-line help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Theme, k.Help}
}

// FullHelp returns the bindings shown in the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Quit, k.Help},
		{k.Theme, k.Focus},
	}
}

// ModelConfig configures the root dashboard model.
type ModelConfig struct {
	// Widgets are rendered top to bottom in slice order.
	Widgets []Widget

	// Updates is the collector runner's fan-in channel.
	Updates <-chan collectors.Update

	// Theme is the initial color theme.
	Theme theme.Theme

	// Title is shown in the header, typically the GPU product name.
	Title string

	// Refresh is the UI tick period for stale-data checks (default 1s).
	Refresh time.Duration
}

// Model is the root bubbletea model: a vertical stack of widgets fed by
// the collector updates channel, with a spinner until the first reading
// arrives.
type Model struct {
	widgets []Widget
	focused int
	updates <-chan collectors.Update

	spinner spinner.Model
	help    help.Model
	keys    KeyMap

	theme    theme.Theme
	themeIdx int

	title   string
	refresh time.Duration

	width, height int
	gotData       bool
	lastUpdate    time.Time
	stale         bool
}

// NewModel builds the root model. Zero-value config fields get defaults.
func NewModel(cfg ModelConfig) Model {
	if cfg.Refresh <= 0 {
		cfg.Refresh = time.Second
	}
	if cfg.Theme.Name == "" {
		cfg.Theme = theme.Get("default")
	}
	if cfg.Title == "" {
		cfg.Title = "NV-Stats"
	}

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Accent))),
	)

	return Model{
		widgets: cfg.Widgets,
		updates: cfg.Updates,
		spinner: sp,
		help:    help.New(),
		keys:    DefaultKeyMap(),
		theme:   cfg.Theme,
		title:   cfg.Title,
		refresh: cfg.Refresh,
	}
}

// Init starts the spinner, the updates listener, and the refresh ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		WaitForUpdateCmd(m.updates),
		TickCmd(m.refresh),
	)
}

// Update routes messages to the model and its widgets.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.gotData {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case DataUpdateEvent:
		if msg.Err == nil && msg.Source == "gpustats" {
			m.gotData = true
			m.lastUpdate = msg.Timestamp
			m.stale = false
		}
		cmds := m.broadcast(msg)
		cmds = append(cmds, WaitForUpdateCmd(m.updates))
		return m, tea.Batch(cmds...)

	case TickEvent:
		if m.gotData && time.Since(m.lastUpdate) > 3*m.refresh {
			m.stale = true
		}
		return m, TickCmd(m.refresh)

	case ThemeChangeEvent:
		m.theme = theme.Get(msg.Theme)
		return m, tea.Batch(m.broadcast(msg)...)
	}

	return m, tea.Batch(m.broadcast(msg)...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		names := theme.Names()
		if len(names) == 0 {
			return m, nil
		}
		m.themeIdx = (m.themeIdx + 1) % len(names)
		next := names[m.themeIdx]
		return m, func() tea.Msg { return ThemeChangeEvent{Theme: next} }

	case key.Matches(msg, m.keys.Focus):
		if len(m.widgets) > 0 {
			m.focused = (m.focused + 1) % len(m.widgets)
		}
		return m, nil
	}

	if m.focused < len(m.widgets) {
		return m, m.widgets[m.focused].HandleKey(msg)
	}
	return m, nil
}

// broadcast forwards a message to every widget and gathers their
// commands.
func (m *Model) broadcast(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	for _, w := range m.widgets {
		if cmd := w.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// View renders the header, the widget stack, and the help line.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}

	var b strings.Builder

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.theme.Accent)).
		Render(m.title)
	if m.stale {
		header += lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.theme.Dim)).
			Render("  (stale)")
	}
	b.WriteString(header)
	b.WriteString("\n")

	if !m.gotData {
		b.WriteString(m.spinner.View())
		b.WriteString(" waiting for nvidia-smi...\n")
	}

	boxWidth := m.width - 2
	if boxWidth < 20 {
		boxWidth = 20
	}

	for i, w := range m.widgets {
		minW, minH := w.MinSize()
		innerW := boxWidth - 2
		if innerW < minW {
			innerW = minW
		}

		borderColor := m.theme.Border
		if i == m.focused {
			borderColor = m.theme.Accent
		}

		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(borderColor)).
			Width(innerW).
			Render(titleLine(w.Title(), m.theme) + "\n" + w.View(innerW, minH))
		b.WriteString(box)
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// titleLine renders a widget title in the theme's title color.
func titleLine(title string, t theme.Theme) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Title)).
		Render(title)
}
