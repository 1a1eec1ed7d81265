package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chesterbait88/NV-Stats/pkg/collectors"
)

// TickCmd returns a bubbletea Cmd that sends a TickEvent after the given
// duration. This drives the periodic UI refresh cycle.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickEvent{Time: t}
	})
}

// WaitForUpdateCmd returns a Cmd that blocks on the collector updates
// channel and delivers the next result as a DataUpdateEvent. The model
// re-arms it after every delivery. A closed channel yields nil, which
// bubbletea discards, ending the listen loop.
func WaitForUpdateCmd(updates <-chan collectors.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return nil
		}
		return DataUpdateEvent{
			Source:    u.Source,
			Data:      u.Data,
			Err:       u.Error,
			Timestamp: u.Timestamp,
		}
	}
}
