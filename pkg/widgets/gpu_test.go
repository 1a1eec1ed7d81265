package widgets

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/chesterbait88/NV-Stats/pkg/app"
	"github.com/chesterbait88/NV-Stats/pkg/components"
	"github.com/chesterbait88/NV-Stats/pkg/nvsmi"
	"github.com/chesterbait88/NV-Stats/pkg/theme"
)

func testThresholds() nvsmi.Thresholds {
	return nvsmi.Thresholds{Warn: 70, Crit: 90}
}

func testReading() nvsmi.Reading {
	return nvsmi.Reading{
		Utilization: 55,
		Memory:      23,
		Temperature: 61,
		Fan:         40,
		Timestamp:   time.Now(),
	}
}

func gpuUpdate(r nvsmi.Reading) app.DataUpdateEvent {
	return app.DataUpdateEvent{Source: "gpustats", Data: r, Timestamp: r.Timestamp}
}

func TestGPUWidgetNoData(t *testing.T) {
	w := NewGPUWidget(testThresholds(), theme.Get("default"))

	view := components.StripANSI(w.View(40, 6))
	if !strings.Contains(view, "No data") {
		t.Errorf("empty widget should show 'No data', got:\n%s", view)
	}
}

func TestGPUWidgetRendersGauges(t *testing.T) {
	w := NewGPUWidget(testThresholds(), theme.Get("default"))
	w.Update(gpuUpdate(testReading()))

	view := components.StripANSI(w.View(40, 8))
	for _, want := range []string{"GPU", "MEM", "TMP", "FAN", "55%", "23%", "61°C", "40%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestGPUWidgetIgnoresOtherSources(t *testing.T) {
	w := NewGPUWidget(testThresholds(), theme.Get("default"))
	w.Update(app.DataUpdateEvent{Source: "hostmetrics", Data: testReading()})

	if w.reading != nil {
		t.Error("widget should ignore updates from other sources")
	}
}

func TestGPUWidgetFailureMarksStale(t *testing.T) {
	w := NewGPUWidget(testThresholds(), theme.Get("default"))
	w.Update(gpuUpdate(testReading()))
	w.Update(app.DataUpdateEvent{Source: "gpustats", Err: errors.New("boom")})

	view := components.StripANSI(w.View(40, 10))
	if !strings.Contains(view, "stale") {
		t.Errorf("failed update after data should mark the view stale:\n%s", view)
	}
	// Old values still render.
	if !strings.Contains(view, "55%") {
		t.Errorf("last reading should survive a failure:\n%s", view)
	}
}

func TestGPUWidgetFailureBeforeData(t *testing.T) {
	w := NewGPUWidget(testThresholds(), theme.Get("default"))
	w.Update(app.DataUpdateEvent{Source: "gpustats", Err: errors.New("no nvidia-smi")})

	view := components.StripANSI(w.View(40, 6))
	if !strings.Contains(view, "unavailable") {
		t.Errorf("failure with no prior data should show unavailable:\n%s", view)
	}
}

func TestGPUWidgetHistoryCapped(t *testing.T) {
	w := NewGPUWidget(testThresholds(), theme.Get("default"))

	for i := 0; i < gpuMaxHistory+20; i++ {
		r := testReading()
		r.Utilization = i % 100
		w.Update(gpuUpdate(r))
	}

	if len(w.utilHistory) != gpuMaxHistory {
		t.Errorf("history length = %d, want %d", len(w.utilHistory), gpuMaxHistory)
	}
}

func TestGPUWidgetTempBandColor(t *testing.T) {
	w := NewGPUWidget(testThresholds(), theme.Get("default"))
	r := testReading()
	r.Temperature = 95
	w.Update(gpuUpdate(r))

	// Default theme critical band is #ff0000.
	if !strings.Contains(w.View(40, 8), "38;2;255;0;0") {
		t.Error("critical temperature should use the critical band color")
	}
}

func TestGPUWidgetThemeChange(t *testing.T) {
	w := NewGPUWidget(testThresholds(), theme.Get("default"))
	w.Update(app.ThemeChangeEvent{Theme: "nord"})

	if w.theme.Name != "nord" {
		t.Errorf("theme = %q, want nord", w.theme.Name)
	}
}

func TestGPUFormatReading(t *testing.T) {
	got := gpuFormatReading(testReading())
	want := "GPU 55%  MEM 23%  61°C  FAN 40%"
	if got != want {
		t.Errorf("gpuFormatReading = %q, want %q", got, want)
	}
}
