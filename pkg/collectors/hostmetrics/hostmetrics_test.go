package hostmetrics

import (
	"context"
	"testing"
	"time"
)

func TestCollect(t *testing.T) {
	c := New(Config{})

	data, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	m, ok := data.(Metrics)
	if !ok {
		t.Fatalf("Collect returned %T, want Metrics", data)
	}
	if m.CPUPercent < 0 || m.CPUPercent > 100 {
		t.Errorf("CPUPercent = %v, want 0-100", m.CPUPercent)
	}
	if m.MemPercent <= 0 || m.MemPercent > 100 {
		t.Errorf("MemPercent = %v, want (0, 100]", m.MemPercent)
	}
	if m.MemTotal == 0 {
		t.Error("MemTotal should be non-zero")
	}
	if m.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
	if !c.Healthy() {
		t.Error("collector should be healthy after success")
	}
}

func TestCollectCancelledContext(t *testing.T) {
	c := New(Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Collect(ctx); err == nil {
		t.Fatal("Collect should fail with a cancelled context")
	}
}

func TestDefaults(t *testing.T) {
	c := New(Config{})

	if c.Name() != "hostmetrics" {
		t.Errorf("Name = %q", c.Name())
	}
	if c.Interval() != 5*time.Second {
		t.Errorf("Interval = %v, want 5s", c.Interval())
	}
}
