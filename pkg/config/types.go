package config

import (
	"fmt"

	"github.com/chesterbait88/NV-Stats/pkg/nvsmi"
)

// Layout selects how the four panel values are arranged.
type Layout string

const (
	// LayoutHorizontal renders all four values on one line.
	LayoutHorizontal Layout = "horizontal"

	// LayoutVertical renders two stacked lines: utilization/memory on the
	// first, temperature/fan on the second.
	LayoutVertical Layout = "vertical"
)

// ParseLayout validates a layout name. The empty string maps to horizontal.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case "", LayoutHorizontal:
		return LayoutHorizontal, nil
	case LayoutVertical:
		return LayoutVertical, nil
	}
	return "", fmt.Errorf("config: unknown layout %q (want horizontal or vertical)", s)
}

// Config is the root configuration structure, mirrored by
// ~/.config/nv-stats/config.toml.
type Config struct {
	Display    DisplayConfig    `toml:"display"`
	Poll       PollConfig       `toml:"poll"`
	Thresholds ThresholdsConfig `toml:"thresholds"`
	Theme      ThemeConfig      `toml:"theme"`
	Log        LogConfig        `toml:"log"`
	Cache      CacheConfig      `toml:"cache"`
	Host       HostConfig       `toml:"host"`
}

// DisplayConfig controls panel text appearance.
type DisplayConfig struct {
	// Layout is "horizontal" or "vertical".
	Layout string `toml:"layout"`

	// Padding is the number of spaces added on each side of every panel
	// line.
	Padding int `toml:"padding"`

	// Color forces color output on ("always"), off ("never"), or leaves it
	// to TTY detection ("auto").
	Color string `toml:"color"`
}

// PollConfig controls the refresh timer and the diagnostic subprocess.
type PollConfig struct {
	// Interval is the refresh period for watch mode and the TUI.
	Interval Duration `toml:"interval"`

	// SMIPath overrides the nvidia-smi binary path. Empty uses PATH lookup.
	SMIPath string `toml:"smi_path"`

	// Timeout bounds each subprocess invocation.
	Timeout Duration `toml:"timeout"`
}

// ThresholdsConfig holds the temperature cut points in degrees Celsius.
type ThresholdsConfig struct {
	Warn int `toml:"warn"`
	Crit int `toml:"crit"`
}

// Bands converts the config values to the domain Thresholds type.
func (t ThresholdsConfig) Bands() nvsmi.Thresholds {
	return nvsmi.Thresholds{Warn: t.Warn, Crit: t.Crit}
}

// ThemeConfig selects the color palette.
type ThemeConfig struct {
	// Name picks a built-in or previously loaded theme.
	Name string `toml:"name"`

	// File optionally points at a TOML theme definition, loaded and
	// registered at startup. When set, it wins over Name.
	File string `toml:"file"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	// File is the log file path. Empty means stderr only.
	File string `toml:"file"`

	// Level is "debug", "info", "warn", or "error".
	Level string `toml:"level"`

	// FailureEvery suppresses repeated failure logs: after the first
	// failure, only every Nth consecutive failure is logged.
	FailureEvery int `toml:"failure_every"`
}

// CacheConfig controls the last-reading snapshot used by one-shot panel
// invocations.
type CacheConfig struct {
	// Dir is the snapshot directory. Empty means
	// $XDG_CACHE_HOME/nv-stats.
	Dir string `toml:"dir"`
}

// HostConfig controls the supplementary CPU/memory metrics.
type HostConfig struct {
	// Enabled turns on the host metrics collector in the TUI and adds a
	// host segment to panel output.
	Enabled bool `toml:"enabled"`

	// Interval is the host metrics polling period. Zero inherits the GPU
	// poll interval.
	Interval Duration `toml:"interval"`
}

// Validate checks structural constraints: ordered thresholds, a usable
// interval, a known layout, and sane display values.
func (c *Config) Validate() error {
	if _, err := ParseLayout(c.Display.Layout); err != nil {
		return err
	}
	if c.Display.Padding < 0 {
		return fmt.Errorf("config: display.padding must not be negative")
	}
	switch c.Display.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("config: display.color %q (want auto, always, or never)", c.Display.Color)
	}
	if c.Poll.Interval.Duration <= 0 {
		return fmt.Errorf("config: poll.interval must be positive")
	}
	if err := c.Thresholds.Bands().Validate(); err != nil {
		return fmt.Errorf("config: thresholds: %w", err)
	}
	if c.Log.FailureEvery < 1 {
		return fmt.Errorf("config: log.failure_every must be at least 1")
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q (want debug, info, warn, or error)", c.Log.Level)
	}
	return nil
}
