// Package theme provides named color palettes for the NV-Stats panel and
// dashboard. A theme maps each temperature band to a hex color and supplies
// the ambient colors (labels, dim text, gauge fills) the renderers use.
package theme

import (
	"sort"
	"strings"
	"sync"

	"github.com/chesterbait88/NV-Stats/pkg/nvsmi"
)

// Theme defines the complete color palette for panel and TUI output.
type Theme struct {
	Name string

	// Base colors
	Label  string // metric labels ("GPU", "MEM", "FAN")
	Value  string // metric values
	Dim    string // dimmed text, separators, placeholder dashes
	Accent string // highlights, TUI focus

	// Widget colors
	Border string // TUI frame border
	Title  string // TUI title text

	// Temperature band colors
	BandNormal   string
	BandWarning  string
	BandCritical string

	// Gauge colors
	GaugeFilled string
	GaugeEmpty  string
	GaugeWarn   string
	GaugeCrit   string
}

// BandColor returns the hex color configured for a temperature band.
func (t Theme) BandColor(b nvsmi.Band) string {
	switch b {
	case nvsmi.BandCritical:
		return t.BandCritical
	case nvsmi.BandWarning:
		return t.BandWarning
	default:
		return t.BandNormal
	}
}

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	thRegisterBuiltins()
}

// Get returns a named theme, falling back to the default if not found.
func Get(name string) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[strings.ToLower(name)]; ok {
		return t
	}
	return registry["default"]
}

// Names returns all available theme names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds a theme to the registry under its lowercase name, replacing
// any existing theme of the same name. User themes loaded from TOML files
// go through here.
func Register(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(t.Name)] = t
}

func thRegisterBuiltins() {
	for _, t := range []Theme{
		thDefaultTheme(),
		thNordTheme(),
		thGruvboxTheme(),
		thMonoTheme(),
	} {
		registry[strings.ToLower(t.Name)] = t
	}
}
