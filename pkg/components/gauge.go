package components

import (
	"fmt"
	"math"
	"strings"
)

// Block characters for sub-cell precision (8 levels per cell).
var gaugeBlocks = [9]rune{
	' ',      // 0/8 empty
	'▏', // 1/8 ▏
	'▎', // 2/8 ▎
	'▍', // 3/8 ▍
	'▌', // 4/8 ▌
	'▋', // 5/8 ▋
	'▊', // 6/8 ▊
	'▉', // 7/8 ▉
	'█', // 8/8 █
}

// GaugeStyle configures the appearance of a horizontal bar gauge. Warn and
// Crit thresholds are in value space (the same units as the rendered value,
// e.g. percent or degrees C), not fill ratio, so a temperature gauge scaled
// to 110°C still changes color at the configured 70°C cut point.
type GaugeStyle struct {
	Width       int    // total width in cells for the bar portion
	ShowPercent bool   // show "73%" label after bar
	Unit        string // unit suffix for the value label ("%", "°C")
	Label       string // optional left label (e.g., "GPU")
	LabelWidth  int    // fixed width for label area (0 = no label)
	FilledColor string // hex color for filled portion
	EmptyColor  string // hex color for empty portion
	Warn        int    // value at/above which the fill uses WarnColor (0 = off)
	Crit        int    // value at/above which the fill uses CritColor (0 = off)
	WarnColor   string
	CritColor   string
}

// Gauge renders horizontal bar gauges with sub-cell precision.
type Gauge struct {
	style GaugeStyle
}

// NewGauge creates a new Gauge with the given style.
func NewGauge(style GaugeStyle) *Gauge {
	return &Gauge{style: style}
}

// Render renders a gauge bar at the given width. The width parameter, when
// positive, overrides the style width for this call. value and maxValue
// define the fill ratio; the fill color comes from the value-space
// thresholds.
func (g *Gauge) Render(value, maxValue int, width int) string {
	if width <= 0 {
		width = g.style.Width
	}
	if width <= 0 {
		width = 20
	}

	ratio := 0.0
	if maxValue > 0 {
		ratio = float64(value) / float64(maxValue)
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	fillColor := g.style.FilledColor
	if g.style.Warn > 0 && value >= g.style.Warn {
		fillColor = g.style.WarnColor
	}
	if g.style.Crit > 0 && value >= g.style.Crit {
		fillColor = g.style.CritColor
	}

	bar := gaugeRenderBar(ratio, width, fillColor, g.style.EmptyColor)

	var b strings.Builder
	if g.style.Label != "" {
		labelW := g.style.LabelWidth
		if labelW <= 0 {
			labelW = len(g.style.Label) + 1
		}
		b.WriteString(PadRight(g.style.Label, labelW))
	}
	b.WriteString(bar)
	if g.style.ShowPercent {
		unit := g.style.Unit
		if unit == "" {
			unit = "%"
		}
		b.WriteString(fmt.Sprintf(" %d%s", value, unit))
	}
	return b.String()
}

// gaugeRenderBar builds the ANSI-colored bar string with sub-cell precision.
func gaugeRenderBar(ratio float64, width int, fillColor, emptyColor string) string {
	totalUnits := width * 8
	filledUnits := int(math.Round(ratio * float64(totalUnits)))
	if filledUnits < 0 {
		filledUnits = 0
	}
	if filledUnits > totalUnits {
		filledUnits = totalUnits
	}

	fullCells := filledUnits / 8
	partialEighths := filledUnits % 8
	emptyCells := width - fullCells
	if partialEighths > 0 {
		emptyCells--
	}
	if emptyCells < 0 {
		emptyCells = 0
	}

	fgFill := Color(fillColor)
	bgEmpty := BgColor(emptyColor)
	fgEmpty := Color(emptyColor)

	var b strings.Builder
	if fullCells > 0 {
		b.WriteString(fgFill)
		b.WriteString(bgEmpty)
		b.WriteString(strings.Repeat(string(gaugeBlocks[8]), fullCells))
		b.WriteString(Reset())
	}
	if partialEighths > 0 {
		b.WriteString(fgFill)
		b.WriteString(bgEmpty)
		b.WriteRune(gaugeBlocks[partialEighths])
		b.WriteString(Reset())
	}
	if emptyCells > 0 {
		b.WriteString(fgEmpty)
		b.WriteString(strings.Repeat(" ", emptyCells))
		b.WriteString(Reset())
	}
	return b.String()
}
