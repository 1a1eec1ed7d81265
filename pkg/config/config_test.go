package config

import (
	"strings"
	"testing"
	"time"
)

const sampleConfigTOML = `
[display]
layout = "vertical"
padding = 2
color = "always"

[poll]
interval = "5s"
smi_path = "/opt/cuda/bin/nvidia-smi"
timeout = "3s"

[thresholds]
warn = 65
crit = 85

[theme]
name = "nord"

[log]
level = "debug"
failure_every = 30

[host]
enabled = true
interval = "10s"
`

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig fails validation: %v", err)
	}
}

func TestDefaultThresholdsMatchPanelDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Thresholds.Warn != 70 || cfg.Thresholds.Crit != 90 {
		t.Errorf("unexpected default thresholds: warn=%d crit=%d", cfg.Thresholds.Warn, cfg.Thresholds.Crit)
	}
}

func TestLoadFromReader(t *testing.T) {
	t.Setenv("NO_COLOR", "") // keep ambient NO_COLOR from flipping the color mode
	cfg, err := LoadFromReader(strings.NewReader(sampleConfigTOML))
	if err != nil {
		t.Fatalf("LoadFromReader returned error: %v", err)
	}
	if cfg.Display.Layout != "vertical" {
		t.Errorf("layout = %q", cfg.Display.Layout)
	}
	if cfg.Display.Padding != 2 {
		t.Errorf("padding = %d", cfg.Display.Padding)
	}
	if cfg.Poll.Interval.Duration != 5*time.Second {
		t.Errorf("interval = %v", cfg.Poll.Interval.Duration)
	}
	if cfg.Poll.SMIPath != "/opt/cuda/bin/nvidia-smi" {
		t.Errorf("smi_path = %q", cfg.Poll.SMIPath)
	}
	if cfg.Thresholds.Warn != 65 || cfg.Thresholds.Crit != 85 {
		t.Errorf("thresholds = %+v", cfg.Thresholds)
	}
	if !cfg.Host.Enabled {
		t.Error("host.enabled should be true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("sample config fails validation: %v", err)
	}
}

func TestLoadFromReaderPartialKeepsDefaults(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader("[thresholds]\nwarn = 60\ncrit = 80\n"))
	if err != nil {
		t.Fatalf("LoadFromReader returned error: %v", err)
	}
	if cfg.Thresholds.Warn != 60 {
		t.Errorf("warn = %d", cfg.Thresholds.Warn)
	}
	if cfg.Display.Layout != string(LayoutHorizontal) {
		t.Errorf("expected default layout, got %q", cfg.Display.Layout)
	}
	if cfg.Poll.Interval.Duration != 2*time.Second {
		t.Errorf("expected default interval, got %v", cfg.Poll.Interval.Duration)
	}
}

func TestValidateRejectsUnorderedThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Thresholds.Warn = 90
	cfg.Thresholds.Crit = 70
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for inverted thresholds")
	}
	cfg.Thresholds.Warn = 80
	cfg.Thresholds.Crit = 80
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for equal thresholds")
	}
}

func TestValidateRejectsBadLayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Display.Layout = "diagonal"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown layout")
	}
}

func TestValidateRejectsZeroInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Poll.Interval = Duration{0}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero interval")
	}
}

func TestValidateRejectsNegativePadding(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Display.Padding = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative padding")
	}
}

func TestValidateRejectsBadColorMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Display.Color = "sometimes"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown color mode")
	}
}

func TestParseLayout(t *testing.T) {
	cases := []struct {
		in      string
		want    Layout
		wantErr bool
	}{
		{"", LayoutHorizontal, false},
		{"horizontal", LayoutHorizontal, false},
		{"vertical", LayoutVertical, false},
		{"stacked", "", true},
	}
	for _, tc := range cases {
		got, err := ParseLayout(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseLayout(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLayout(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseLayout(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("NVSTATS_THEME", "gruvbox")
	t.Setenv("NVSTATS_LAYOUT", "vertical")
	t.Setenv("NVSTATS_INTERVAL", "7s")
	t.Setenv("NVSTATS_WARN", "60")
	t.Setenv("NVSTATS_CRIT", "95")

	cfg, err := LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader returned error: %v", err)
	}
	if cfg.Theme.Name != "gruvbox" {
		t.Errorf("theme = %q", cfg.Theme.Name)
	}
	if cfg.Display.Layout != "vertical" {
		t.Errorf("layout = %q", cfg.Display.Layout)
	}
	if cfg.Poll.Interval.Duration != 7*time.Second {
		t.Errorf("interval = %v", cfg.Poll.Interval.Duration)
	}
	if cfg.Thresholds.Warn != 60 || cfg.Thresholds.Crit != 95 {
		t.Errorf("thresholds = %+v", cfg.Thresholds)
	}
}

func TestNoColorEnvForcesNever(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	cfg, err := LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader returned error: %v", err)
	}
	if cfg.Display.Color != "never" {
		t.Errorf("color = %q, want never", cfg.Display.Color)
	}
}

func TestDurationUnmarshal(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("90s")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if d.Duration != 90*time.Second {
		t.Errorf("duration = %v", d.Duration)
	}
	if err := d.UnmarshalText([]byte("-5s")); err == nil {
		t.Error("expected error for negative duration")
	}
	if err := d.UnmarshalText([]byte("soon")); err == nil {
		t.Error("expected error for malformed duration")
	}
}
