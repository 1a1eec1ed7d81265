package panel

import (
	"strconv"
	"strings"

	"github.com/chesterbait88/NV-Stats/pkg/components"
)

const segmentGap = "  "

func percent(v int) string {
	return strconv.Itoa(v) + "%"
}

func celsius(v int) string {
	return strconv.Itoa(v) + "°C"
}

// formatRows joins each row's segments with a two-space gap and applies
// padding on both sides of every line.
func formatRows(rows [][]Segment, opts Options) string {
	pad := strings.Repeat(" ", opts.Padding)

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		parts := make([]string, 0, len(row))
		for _, s := range row {
			parts = append(parts, formatSegment(s, opts))
		}
		lines = append(lines, pad+strings.Join(parts, segmentGap)+pad)
	}
	return strings.Join(lines, "\n")
}

func formatSegment(s Segment, opts Options) string {
	text := s.Text
	if s.Label != "" {
		text = s.Label + " " + text
	}
	if !opts.Color || s.Color == "" {
		return text
	}
	if s.Label != "" {
		// Label stays in the muted label color, value carries the
		// segment color.
		return components.Colorize(s.Label, opts.Theme.Label) + " " +
			components.Colorize(s.Text, s.Color)
	}
	return components.Colorize(text, s.Color)
}
