// Package nvsmi runs the NVIDIA command-line diagnostics and parses their
// fixed-column text output into a Reading of the four panel metrics:
// GPU utilization, memory utilization, temperature, and fan speed.
//
// Two output flavors are consumed: the tabular `nvidia-smi dmon` report
// (utilization, memory, temperature) and the single-value
// `--query-gpu=fan.speed` CSV query (fan speed). Both are plain text; no
// NVML bindings are required.
package nvsmi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrNoData indicates that the diagnostic output could not be parsed into a
// usable reading: empty output, header-only output, too few columns, or
// non-numeric / out-of-range values. Callers render placeholder dashes and
// wait for the next tick; there is no retry beyond the timer itself.
var ErrNoData = errors.New("nvsmi: no data")

// Reading is a single snapshot of the four panel metrics. Readings are
// transient: collected fresh on every tick and discarded after display.
type Reading struct {
	// Utilization is the SM (GPU core) utilization percentage, 0-100.
	Utilization int `json:"utilization"`

	// Memory is the memory-controller utilization percentage, 0-100.
	Memory int `json:"memory"`

	// Temperature is the GPU core temperature in degrees Celsius.
	Temperature int `json:"temperature"`

	// Fan is the fan duty cycle percentage, 0-100.
	Fan int `json:"fan"`

	// Timestamp records when the reading was taken.
	Timestamp time.Time `json:"timestamp"`
}

// dmon column offsets within a whitespace-split data row. The dmon report
// leads with the device index, so the metric columns sit at fixed offsets:
//
//	# gpu    pwr  gtemp  mtemp     sm    mem    enc    dec   mclk   pclk
//	# Idx      W      C      C      %      %      %      %    MHz    MHz
//	    0     28     61      -     55     23      0      0   5000   1350
const (
	dmonColTemp = 2 // gtemp, degrees C
	dmonColSM   = 4 // sm utilization, percent
	dmonColMem  = 5 // memory utilization, percent

	// dmonMinCols is the minimum column count for a usable data row.
	dmonMinCols = 6
)

// ParseDMon extracts temperature, SM utilization, and memory utilization
// from a dmon report. Lines starting with '#' are headers and are skipped;
// the first remaining row is the data row. Returns ErrNoData (wrapped) if
// the report has no data row, too few columns, or non-numeric fields.
func ParseDMon(output string) (util, mem, temp int, err error) {
	row, ok := firstDataRow(output)
	if !ok {
		return 0, 0, 0, fmt.Errorf("%w: dmon report has no data rows", ErrNoData)
	}

	fields := strings.Fields(row)
	if len(fields) < dmonMinCols {
		return 0, 0, 0, fmt.Errorf("%w: dmon row has %d fields, want at least %d", ErrNoData, len(fields), dmonMinCols)
	}

	temp, err = parseField(fields[dmonColTemp], "gtemp")
	if err != nil {
		return 0, 0, 0, err
	}
	util, err = parseField(fields[dmonColSM], "sm")
	if err != nil {
		return 0, 0, 0, err
	}
	mem, err = parseField(fields[dmonColMem], "mem")
	if err != nil {
		return 0, 0, 0, err
	}
	return util, mem, temp, nil
}

// ParseFanSpeed parses the fan.speed query output: a bare integer 0-100,
// possibly surrounded by whitespace. Anything else is ErrNoData.
func ParseFanSpeed(output string) (int, error) {
	s := strings.TrimSpace(output)
	if s == "" {
		return 0, fmt.Errorf("%w: empty fan speed output", ErrNoData)
	}
	// Multi-GPU systems emit one line per device; the first line is the
	// primary device, matching the dmon data-row choice.
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: fan speed %q is not an integer", ErrNoData, s)
	}
	if n < 0 || n > 100 {
		return 0, fmt.Errorf("%w: fan speed %d outside 0-100", ErrNoData, n)
	}
	return n, nil
}

// firstDataRow returns the first non-empty, non-header line of a dmon
// report. Header lines start with '#' after optional leading whitespace.
func firstDataRow(output string) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return trimmed, true
	}
	return "", false
}

// parseField converts one dmon column to an int. dmon prints "-" for
// sensors the device does not expose; that counts as no data here since
// the panel cannot render it.
func parseField(s, name string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: dmon column %s %q is not an integer", ErrNoData, name, s)
	}
	return n, nil
}
