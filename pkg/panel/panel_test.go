package panel

import (
	"strings"
	"testing"

	"github.com/chesterbait88/NV-Stats/pkg/collectors/hostmetrics"
	"github.com/chesterbait88/NV-Stats/pkg/components"
	"github.com/chesterbait88/NV-Stats/pkg/config"
	"github.com/chesterbait88/NV-Stats/pkg/nvsmi"
	"github.com/chesterbait88/NV-Stats/pkg/theme"
)

func testOptions() Options {
	return Options{
		Layout:     config.LayoutHorizontal,
		Thresholds: nvsmi.Thresholds{Warn: 70, Crit: 90},
		Theme:      theme.Get("default"),
	}
}

func testReading() *nvsmi.Reading {
	return &nvsmi.Reading{Utilization: 55, Memory: 23, Temperature: 61, Fan: 40}
}

func TestRenderHorizontal(t *testing.T) {
	got := Render(testReading(), testOptions())
	want := "GPU 55%  MEM 23%  61°C  FAN 40%"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderVertical(t *testing.T) {
	opts := testOptions()
	opts.Layout = config.LayoutVertical

	got := Render(testReading(), opts)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "GPU 55%  MEM 23%" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[1] != "61°C  FAN 40%" {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestRenderNoReading(t *testing.T) {
	got := Render(nil, testOptions())
	want := "GPU --%  MEM --%  --°C  FAN --%"
	if got != want {
		t.Errorf("Render(nil) = %q, want %q", got, want)
	}
}

func TestRenderPadding(t *testing.T) {
	opts := testOptions()
	opts.Padding = 2

	got := Render(testReading(), opts)
	if !strings.HasPrefix(got, "  GPU") {
		t.Errorf("missing leading padding: %q", got)
	}
	if !strings.HasSuffix(got, "40%  ") {
		t.Errorf("missing trailing padding: %q", got)
	}
}

func TestRenderTemperatureBandColor(t *testing.T) {
	opts := testOptions()
	opts.Color = true

	tests := []struct {
		temp int
		rgb  string
	}{
		{61, "38;2;255;255;255"},
		{75, "38;2;255;251;0"},
		{95, "38;2;255;0;0"},
	}
	for _, tt := range tests {
		r := testReading()
		r.Temperature = tt.temp
		out := Render(r, opts)
		if !strings.Contains(out, tt.rgb) {
			t.Errorf("temp %d: output missing color %q", tt.temp, tt.rgb)
		}
	}
}

func TestRenderColorStripsClean(t *testing.T) {
	opts := testOptions()
	opts.Color = true

	got := components.StripANSI(Render(testReading(), opts))
	want := "GPU 55%  MEM 23%  61°C  FAN 40%"
	if got != want {
		t.Errorf("stripped output = %q, want %q", got, want)
	}
}

func TestRenderHostSegments(t *testing.T) {
	opts := testOptions()
	opts.Host = &hostmetrics.Metrics{CPUPercent: 12.4, MemPercent: 47.8}

	got := Render(testReading(), opts)
	if !strings.Contains(got, "CPU 12%") {
		t.Errorf("missing CPU segment: %q", got)
	}
	if !strings.Contains(got, "RAM 48%") {
		t.Errorf("missing RAM segment: %q", got)
	}
}

func TestRenderHostVerticalThirdLine(t *testing.T) {
	opts := testOptions()
	opts.Layout = config.LayoutVertical
	opts.Host = &hostmetrics.Metrics{CPUPercent: 10, MemPercent: 20}

	lines := strings.Split(Render(testReading(), opts), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[2] != "CPU 10%  RAM 20%" {
		t.Errorf("host line = %q", lines[2])
	}
}

func TestColorEnabledModes(t *testing.T) {
	if !ColorEnabled("always") {
		t.Error("always should enable color")
	}
	if ColorEnabled("never") {
		t.Error("never should disable color")
	}
	// auto under test runs on a pipe, never a TTY
	if ColorEnabled("auto") {
		t.Error("auto should disable color without a TTY")
	}
}
