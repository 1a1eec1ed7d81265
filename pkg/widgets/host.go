package widgets

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chesterbait88/NV-Stats/pkg/app"
	"github.com/chesterbait88/NV-Stats/pkg/collectors/hostmetrics"
	"github.com/chesterbait88/NV-Stats/pkg/components"
	"github.com/chesterbait88/NV-Stats/pkg/theme"
)

// Host CPU and memory thresholds (percentage 0-100).
const (
	hostWarnThreshold = 70
	hostCritThreshold = 90
)

// HostWidget displays host CPU and memory gauges alongside the GPU pane
// so GPU load can be read in context.
type HostWidget struct {
	metrics *hostmetrics.Metrics
	theme   theme.Theme
}

// NewHostWidget creates a HostWidget with the given theme.
func NewHostWidget(th theme.Theme) *HostWidget {
	return &HostWidget{theme: th}
}

// ID returns the unique identifier for this widget.
func (w *HostWidget) ID() string {
	return "host"
}

// Title returns the display name for this widget.
func (w *HostWidget) Title() string {
	return "Host"
}

// MinSize returns the minimum width and height this widget requires.
func (w *HostWidget) MinSize() (int, int) {
	return 30, 3
}

// Update handles messages directed at this widget. It processes
// DataUpdateEvent messages with Source "hostmetrics".
func (w *HostWidget) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case app.DataUpdateEvent:
		if msg.Source != "hostmetrics" || msg.Err != nil {
			return nil
		}
		m, ok := msg.Data.(hostmetrics.Metrics)
		if !ok {
			mp, okp := msg.Data.(*hostmetrics.Metrics)
			if !okp || mp == nil {
				return nil
			}
			m = *mp
		}
		w.metrics = &m

	case app.ThemeChangeEvent:
		w.theme = theme.Get(msg.Theme)
	}
	return nil
}

// HandleKey is a no-op for the host widget.
func (w *HostWidget) HandleKey(_ tea.KeyMsg) tea.Cmd {
	return nil
}

// View renders the widget content into the given area dimensions.
func (w *HostWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	if w.metrics == nil {
		return gpuCenterMessage("No data", width, height)
	}

	m := w.metrics
	lines := []string{
		w.hostRenderGauge("CPU", int(m.CPUPercent+0.5), width),
		w.hostRenderGauge("RAM", int(m.MemPercent+0.5), width),
		gpuTruncLine(fmt.Sprintf("Load: %.2f", m.Load1), width),
	}

	return gpuFitLines(lines, width, height)
}

func (w *HostWidget) hostRenderGauge(label string, value, width int) string {
	barWidth := width - len(label) - 8
	if barWidth < 5 {
		barWidth = 5
	}

	g := components.NewGauge(components.GaugeStyle{
		Width:       barWidth,
		ShowPercent: true,
		Label:       label,
		LabelWidth:  len(label) + 1,
		FilledColor: w.theme.GaugeFilled,
		EmptyColor:  w.theme.GaugeEmpty,
		Warn:        hostWarnThreshold,
		Crit:        hostCritThreshold,
		WarnColor:   w.theme.GaugeWarn,
		CritColor:   w.theme.GaugeCrit,
	})
	return gpuTruncLine(g.Render(value, 100, barWidth), width)
}

// compile-time check that HostWidget implements app.Widget.
var _ app.Widget = (*HostWidget)(nil)
