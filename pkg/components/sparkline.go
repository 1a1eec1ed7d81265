package components

import "math"

// Sparkline block characters: 8 vertical levels per cell.
var sparkBlocks = [8]rune{
	'▁', // 1/8 ▁
	'▂', // 2/8 ▂
	'▃', // 3/8 ▃
	'▄', // 4/8 ▄
	'▅', // 5/8 ▅
	'▆', // 6/8 ▆
	'▇', // 7/8 ▇
	'█', // 8/8 █
}

// SparklineStyle configures the appearance of a sparkline.
type SparklineStyle struct {
	Width int    // number of cells to display
	Color string // hex color for the sparkline
	MaxY  int    // fixed maximum Y; 0 means auto-scale to the data
}

// Sparkline renders inline history charts using Unicode block elements.
// NV-Stats uses a fixed 0-100 range for percentage histories so idle
// periods do not get amplified by auto-scaling.
type Sparkline struct {
	style SparklineStyle
}

// NewSparkline creates a new Sparkline with the given style.
func NewSparkline(style SparklineStyle) *Sparkline {
	return &Sparkline{style: style}
}

// Render renders the last `width` points of data as one line of block
// characters. Returns an empty string for empty data.
func (s *Sparkline) Render(data []int, width int) string {
	if len(data) == 0 {
		return ""
	}
	if width <= 0 {
		width = s.style.Width
	}
	if width <= 0 {
		width = 20
	}

	points := data
	if len(points) > width {
		points = points[len(points)-width:]
	}

	maxY := s.style.MaxY
	if maxY <= 0 {
		for _, v := range points {
			if v > maxY {
				maxY = v
			}
		}
	}

	chars := make([]rune, 0, len(points))
	for _, v := range points {
		idx := 0
		if maxY > 0 {
			norm := float64(v) / float64(maxY)
			if norm < 0 {
				norm = 0
			}
			if norm > 1 {
				norm = 1
			}
			idx = int(math.Round(norm * 7))
		}
		chars = append(chars, sparkBlocks[idx])
	}

	return Colorize(string(chars), s.style.Color)
}
