package nvsmi

import "fmt"

// Band is one of the three mutually exclusive temperature ranges used to
// pick a display color.
type Band int

const (
	BandNormal Band = iota
	BandWarning
	BandCritical
)

// String returns the band name used in config files and logs.
func (b Band) String() string {
	switch b {
	case BandWarning:
		return "warning"
	case BandCritical:
		return "critical"
	default:
		return "normal"
	}
}

// Thresholds holds the two temperature cut points that partition readings
// into bands. Warn must be strictly below Crit.
type Thresholds struct {
	Warn int // degrees C; at/above this is the warning band
	Crit int // degrees C; at/above this is the critical band
}

// Classify maps a temperature to its band. Boundaries are inclusive on the
// hot side: t == Warn is warning, t == Crit is critical.
func (t Thresholds) Classify(temp int) Band {
	switch {
	case temp >= t.Crit:
		return BandCritical
	case temp >= t.Warn:
		return BandWarning
	default:
		return BandNormal
	}
}

// Validate reports whether the thresholds are ordered.
func (t Thresholds) Validate() error {
	if t.Warn >= t.Crit {
		return fmt.Errorf("nvsmi: warn threshold %d must be below crit threshold %d", t.Warn, t.Crit)
	}
	return nil
}
