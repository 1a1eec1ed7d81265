// Package widgets provides the concrete widget implementations for the
// NV-Stats watch-mode dashboard. Each widget implements the app.Widget
// interface and receives data via the Elm-architecture Update loop.
package widgets

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chesterbait88/NV-Stats/pkg/app"
	"github.com/chesterbait88/NV-Stats/pkg/components"
	"github.com/chesterbait88/NV-Stats/pkg/nvsmi"
	"github.com/chesterbait88/NV-Stats/pkg/theme"
)

// gpuMaxHistory is the rolling buffer length for sparkline histories.
const gpuMaxHistory = 60

// gpuTempScale is the gauge ceiling for the temperature bar. NVIDIA
// consumer cards throttle in the mid-90s, so 110 leaves the critical zone
// visible without the bar pinning.
const gpuTempScale = 110

// GPUWidget displays the four GPU stats as gauges: utilization, memory
// utilization, temperature, and fan speed, plus a utilization history
// sparkline in expanded mode.
type GPUWidget struct {
	reading     *nvsmi.Reading
	failed      bool
	thresholds  nvsmi.Thresholds
	theme       theme.Theme
	expanded    bool
	utilHistory []int
}

// NewGPUWidget creates a GPUWidget with the given temperature thresholds
// and theme.
func NewGPUWidget(thresholds nvsmi.Thresholds, th theme.Theme) *GPUWidget {
	return &GPUWidget{
		thresholds: thresholds,
		theme:      th,
		expanded:   true,
	}
}

// ID returns the unique identifier for this widget.
func (w *GPUWidget) ID() string {
	return "gpu"
}

// Title returns the display name for this widget.
func (w *GPUWidget) Title() string {
	return "GPU"
}

// MinSize returns the minimum width and height this widget requires.
func (w *GPUWidget) MinSize() (int, int) {
	return 30, 6
}

// Update handles messages directed at this widget. It processes
// DataUpdateEvent messages with Source "gpustats" and theme changes.
func (w *GPUWidget) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case app.DataUpdateEvent:
		if msg.Source != "gpustats" {
			return nil
		}
		if msg.Err != nil {
			w.failed = true
			return nil
		}
		r, ok := msg.Data.(nvsmi.Reading)
		if !ok {
			rp, okp := msg.Data.(*nvsmi.Reading)
			if !okp || rp == nil {
				return nil
			}
			r = *rp
		}
		w.reading = &r
		w.failed = false

		w.utilHistory = gpuAppendHistory(w.utilHistory, r.Utilization)

	case app.ThemeChangeEvent:
		w.theme = theme.Get(msg.Theme)
	}
	return nil
}

// HandleKey processes key events when this widget has focus. 'e' toggles
// the history sparklines.
func (w *GPUWidget) HandleKey(key tea.KeyMsg) tea.Cmd {
	if key.String() == "e" {
		w.expanded = !w.expanded
	}
	return nil
}

// View renders the widget content into the given area dimensions.
func (w *GPUWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	if w.reading == nil {
		msg := "No data"
		if w.failed {
			msg = components.Dim("nvidia-smi unavailable")
		}
		return gpuCenterMessage(msg, width, height)
	}

	r := w.reading
	var lines []string

	lines = append(lines,
		w.gpuRenderGauge("GPU", r.Utilization, 100, "%", width),
		w.gpuRenderGauge("MEM", r.Memory, 100, "%", width),
		w.gpuRenderTempGauge(r.Temperature, width),
		w.gpuRenderGauge("FAN", r.Fan, 100, "%", width),
	)

	if w.expanded && len(w.utilHistory) > 0 {
		sparkWidth := width - 6
		if sparkWidth < 5 {
			sparkWidth = 5
		}
		spark := components.NewSparkline(components.SparklineStyle{
			Width: sparkWidth,
			Color: w.theme.Accent,
			MaxY:  100,
		})
		lines = append(lines, "")
		lines = append(lines, gpuTruncLine("  "+spark.Render(w.utilHistory, sparkWidth), width))
	}

	if w.failed {
		lines = append(lines, components.Dim("last reading is stale"))
	}

	return gpuFitLines(lines, width, height)
}

// gpuRenderGauge renders a percent gauge with warn and crit colors bound
// to the gauge's own scale.
func (w *GPUWidget) gpuRenderGauge(label string, value, maxValue int, unit string, width int) string {
	barWidth := width - len(label) - 8
	if barWidth < 5 {
		barWidth = 5
	}

	g := components.NewGauge(components.GaugeStyle{
		Width:       barWidth,
		ShowPercent: true,
		Unit:        unit,
		Label:       label,
		LabelWidth:  len(label) + 1,
		FilledColor: w.theme.GaugeFilled,
		EmptyColor:  w.theme.GaugeEmpty,
		Warn:        80,
		Crit:        95,
		WarnColor:   w.theme.GaugeWarn,
		CritColor:   w.theme.GaugeCrit,
	})
	return gpuTruncLine(g.Render(value, maxValue, barWidth), width)
}

// gpuRenderTempGauge renders the temperature bar. The fill scales against
// gpuTempScale but colors flip at the configured band thresholds, so the
// bar turns yellow at warn and red at crit regardless of scale.
func (w *GPUWidget) gpuRenderTempGauge(temp, width int) string {
	label := "TMP"
	barWidth := width - len(label) - 8
	if barWidth < 5 {
		barWidth = 5
	}

	g := components.NewGauge(components.GaugeStyle{
		Width:       barWidth,
		ShowPercent: true,
		Unit:        "°C",
		Label:       label,
		LabelWidth:  len(label) + 1,
		FilledColor: w.theme.GaugeFilled,
		EmptyColor:  w.theme.GaugeEmpty,
		Warn:        w.thresholds.Warn,
		Crit:        w.thresholds.Crit,
		WarnColor:   w.theme.BandWarning,
		CritColor:   w.theme.BandCritical,
	})
	return gpuTruncLine(g.Render(temp, gpuTempScale, barWidth), width)
}

// --- private helpers (prefixed with "gpu" to avoid conflicts) ---

func gpuAppendHistory(hist []int, v int) []int {
	hist = append(hist, v)
	if len(hist) > gpuMaxHistory {
		hist = hist[len(hist)-gpuMaxHistory:]
	}
	return hist
}

// gpuCenterMessage renders a centered message in the given area.
func gpuCenterMessage(msg string, width, height int) string {
	lines := make([]string, height)
	midY := height / 2
	for i := range lines {
		if i == midY {
			vis := components.VisibleLen(msg)
			pad := (width - vis) / 2
			if pad < 0 {
				pad = 0
			}
			lines[i] = strings.Repeat(" ", pad) + msg
		}
	}
	return strings.Join(lines, "\n")
}

// gpuFitLines pads or truncates a slice of lines to fit exactly height
// lines, each no wider than width visible characters.
func gpuFitLines(lines []string, width, height int) string {
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		if components.VisibleLen(line) > width {
			lines[i] = components.Truncate(line, width)
		}
	}
	return strings.Join(lines, "\n")
}

// gpuTruncLine truncates a single line to at most width visible
// characters.
func gpuTruncLine(line string, width int) string {
	if components.VisibleLen(line) > width {
		return components.Truncate(line, width)
	}
	return line
}

// gpuFormatReading is a compact one-line summary used by tests and the
// status bar.
func gpuFormatReading(r nvsmi.Reading) string {
	return fmt.Sprintf("GPU %d%%  MEM %d%%  %d°C  FAN %d%%",
		r.Utilization, r.Memory, r.Temperature, r.Fan)
}

// compile-time check that GPUWidget implements app.Widget.
var _ app.Widget = (*GPUWidget)(nil)
