// Package panel renders a Reading as threshold-colored status-bar text.
// It is the plain-text counterpart of the TUI dashboard: one or two short
// lines suitable for a desktop panel, tmux status line, or prompt segment.
package panel

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/chesterbait88/NV-Stats/pkg/collectors/hostmetrics"
	"github.com/chesterbait88/NV-Stats/pkg/config"
	"github.com/chesterbait88/NV-Stats/pkg/nvsmi"
	"github.com/chesterbait88/NV-Stats/pkg/theme"
)

// Placeholder is rendered in place of every value when no reading is
// available.
const Placeholder = "--"

// Options controls panel rendering. Zero value renders a horizontal
// monochrome panel with default thresholds.
type Options struct {
	Layout     config.Layout
	Padding    int // spaces added on each side of every line
	Thresholds nvsmi.Thresholds
	Theme      theme.Theme
	Color      bool

	// Host, when non-nil, appends a CPU/RAM segment (horizontal) or a
	// third line (vertical).
	Host *hostmetrics.Metrics
}

// Segment is one labeled value on the panel line.
type Segment struct {
	Label string // "GPU", "MEM", "FAN"; empty for the bare temperature
	Text  string // value text, e.g. "55%" or "61°C"
	Color string // hex color for the value text
}

// Render produces the panel text for a reading. A nil reading renders
// every value as the placeholder. The result has no trailing newline;
// multi-line layouts join lines with '\n'.
func Render(r *nvsmi.Reading, opts Options) string {
	segs := buildSegments(r, opts)

	layout := opts.Layout
	if layout == "" {
		layout = config.LayoutHorizontal
	}

	switch layout {
	case config.LayoutVertical:
		// Utilization pair on top, thermal pair below; host gets its own
		// line so the stack stays aligned.
		rows := [][]Segment{segs[:2], segs[2:4]}
		if len(segs) > 4 {
			rows = append(rows, segs[4:])
		}
		return formatRows(rows, opts)
	default:
		return formatRows([][]Segment{segs}, opts)
	}
}

// buildSegments maps a reading onto the four panel segments, plus the
// optional host pair. Order is fixed: GPU, MEM, temperature, FAN.
func buildSegments(r *nvsmi.Reading, opts Options) []Segment {
	t := opts.Theme

	segs := make([]Segment, 0, 6)
	if r == nil {
		dim := t.Dim
		segs = append(segs,
			Segment{Label: "GPU", Text: Placeholder + "%", Color: dim},
			Segment{Label: "MEM", Text: Placeholder + "%", Color: dim},
			Segment{Text: Placeholder + "°C", Color: dim},
			Segment{Label: "FAN", Text: Placeholder + "%", Color: dim},
		)
	} else {
		band := opts.Thresholds.Classify(r.Temperature)
		segs = append(segs,
			Segment{Label: "GPU", Text: percent(r.Utilization), Color: t.Value},
			Segment{Label: "MEM", Text: percent(r.Memory), Color: t.Value},
			Segment{Text: celsius(r.Temperature), Color: t.BandColor(band)},
			Segment{Label: "FAN", Text: percent(r.Fan), Color: t.Value},
		)
	}

	if opts.Host != nil {
		segs = append(segs,
			Segment{Label: "CPU", Text: percent(int(opts.Host.CPUPercent + 0.5)), Color: t.Value},
			Segment{Label: "RAM", Text: percent(int(opts.Host.MemPercent + 0.5)), Color: t.Value},
		)
	}
	return segs
}

// ColorEnabled resolves a config color mode ("auto", "always", "never")
// against the actual terminal: auto means a TTY on stdout with a color
// profile better than plain ASCII.
func ColorEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}
