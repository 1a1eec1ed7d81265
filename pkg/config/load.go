package config

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/nv-stats/config.toml
//  2. ~/.config/nv-stats/config.toml
//
// If no file exists, returns DefaultConfig().
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader reads configuration from an io.Reader.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// DefaultConfig returns the default configuration. The thresholds and
// refresh cadence match the original panel defaults.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	cacheDir := filepath.Join(xdgCacheHome(home), "nv-stats")

	return &Config{
		Display: DisplayConfig{
			Layout:  string(LayoutHorizontal),
			Padding: 1,
			Color:   "auto",
		},
		Poll: PollConfig{
			Interval: Duration{2 * time.Second},
			Timeout:  Duration{5 * time.Second},
		},
		Thresholds: ThresholdsConfig{
			Warn: 70,
			Crit: 90,
		},
		Theme: ThemeConfig{
			Name: "default",
		},
		Log: LogConfig{
			File:         filepath.Join(cacheDir, "nv-stats.log"),
			Level:        "info",
			FailureEvery: 60,
		},
		Cache: CacheConfig{
			Dir: cacheDir,
		},
		Host: HostConfig{
			Enabled: false,
		},
	}
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("NVSTATS_THEME"); v != "" {
		cfg.Theme.Name = v
	}
	if v := os.Getenv("NVSTATS_LAYOUT"); v != "" {
		cfg.Display.Layout = v
	}
	if v := os.Getenv("NVSTATS_SMI_PATH"); v != "" {
		cfg.Poll.SMIPath = v
	}
	if v := os.Getenv("NVSTATS_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Poll.Interval = Duration{d}
		}
	}
	if v := os.Getenv("NVSTATS_WARN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Thresholds.Warn = n
		}
	}
	if v := os.Getenv("NVSTATS_CRIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Thresholds.Crit = n
		}
	}
	// NO_COLOR is the conventional opt-out; any non-empty value disables
	// color regardless of the configured mode.
	if v := os.Getenv("NO_COLOR"); v != "" {
		cfg.Display.Color = "never"
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, "nv-stats", "config.toml"))

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, "nv-stats", "config.toml"))
	}

	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

// xdgCacheHome returns XDG_CACHE_HOME or ~/.cache as fallback.
func xdgCacheHome(home string) string {
	if v := os.Getenv("XDG_CACHE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".cache")
}
