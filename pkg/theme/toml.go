package theme

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// thTOMLTheme is the TOML-serializable representation of a Theme.
type thTOMLTheme struct {
	Name   string      `toml:"name"`
	Base   thTOMLBase  `toml:"base"`
	Band   thTOMLBand  `toml:"band"`
	Gauge  thTOMLGauge `toml:"gauge"`
	Widget thTOMLPanel `toml:"widget"`
}

type thTOMLBase struct {
	Label  string `toml:"label"`
	Value  string `toml:"value"`
	Dim    string `toml:"dim"`
	Accent string `toml:"accent"`
}

type thTOMLBand struct {
	Normal   string `toml:"normal"`
	Warning  string `toml:"warning"`
	Critical string `toml:"critical"`
}

type thTOMLGauge struct {
	Filled string `toml:"filled"`
	Empty  string `toml:"empty"`
	Warn   string `toml:"warn"`
	Crit   string `toml:"crit"`
}

type thTOMLPanel struct {
	Border string `toml:"border"`
	Title  string `toml:"title"`
}

var thHexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoadFile reads a theme definition from a TOML file and registers it.
func LoadFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("theme: read %s: %w", path, err)
	}
	t, err := LoadFromTOML(data)
	if err != nil {
		return Theme{}, err
	}
	Register(t)
	return t, nil
}

// LoadFromTOML parses a TOML theme definition from raw bytes.
func LoadFromTOML(data []byte) (Theme, error) {
	var tt thTOMLTheme
	if err := toml.Unmarshal(data, &tt); err != nil {
		return Theme{}, fmt.Errorf("theme: parse TOML: %w", err)
	}

	t := Theme{
		Name:   tt.Name,
		Label:  tt.Base.Label,
		Value:  tt.Base.Value,
		Dim:    tt.Base.Dim,
		Accent: tt.Base.Accent,

		Border: tt.Widget.Border,
		Title:  tt.Widget.Title,

		BandNormal:   tt.Band.Normal,
		BandWarning:  tt.Band.Warning,
		BandCritical: tt.Band.Critical,

		GaugeFilled: tt.Gauge.Filled,
		GaugeEmpty:  tt.Gauge.Empty,
		GaugeWarn:   tt.Gauge.Warn,
		GaugeCrit:   tt.Gauge.Crit,
	}

	if err := thValidateTheme(t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// thValidateTheme checks that all fields are present and valid hex colors.
func thValidateTheme(t Theme) error {
	if t.Name == "" {
		return fmt.Errorf("theme: missing required field %q", "name")
	}

	colorFields := map[string]string{
		"label":         t.Label,
		"value":         t.Value,
		"dim":           t.Dim,
		"accent":        t.Accent,
		"border":        t.Border,
		"title":         t.Title,
		"band_normal":   t.BandNormal,
		"band_warning":  t.BandWarning,
		"band_critical": t.BandCritical,
		"gauge_filled":  t.GaugeFilled,
		"gauge_empty":   t.GaugeEmpty,
		"gauge_warn":    t.GaugeWarn,
		"gauge_crit":    t.GaugeCrit,
	}

	for field, value := range colorFields {
		if value == "" {
			return fmt.Errorf("theme: missing required field %q", field)
		}
		if !thHexColorRegex.MatchString(value) {
			return fmt.Errorf("theme: invalid hex color %q for field %q (expected #RRGGBB)", value, field)
		}
	}
	return nil
}
