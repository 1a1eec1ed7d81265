package widgets

import (
	"strings"
	"testing"
	"time"

	"github.com/chesterbait88/NV-Stats/pkg/app"
	"github.com/chesterbait88/NV-Stats/pkg/collectors/hostmetrics"
	"github.com/chesterbait88/NV-Stats/pkg/components"
	"github.com/chesterbait88/NV-Stats/pkg/theme"
)

func TestHostWidgetNoData(t *testing.T) {
	w := NewHostWidget(theme.Get("default"))

	view := components.StripANSI(w.View(40, 3))
	if !strings.Contains(view, "No data") {
		t.Errorf("empty widget should show 'No data', got:\n%s", view)
	}
}

func TestHostWidgetRendersGauges(t *testing.T) {
	w := NewHostWidget(theme.Get("default"))
	w.Update(app.DataUpdateEvent{
		Source: "hostmetrics",
		Data: hostmetrics.Metrics{
			CPUPercent: 12.4,
			MemPercent: 47.6,
			Load1:      0.42,
			Timestamp:  time.Now(),
		},
	})

	view := components.StripANSI(w.View(40, 3))
	for _, want := range []string{"CPU", "12%", "RAM", "48%", "Load: 0.42"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestHostWidgetIgnoresOtherSources(t *testing.T) {
	w := NewHostWidget(theme.Get("default"))
	w.Update(app.DataUpdateEvent{Source: "gpustats", Data: hostmetrics.Metrics{}})

	if w.metrics != nil {
		t.Error("widget should ignore updates from other sources")
	}
}
