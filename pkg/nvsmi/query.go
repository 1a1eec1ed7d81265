package nvsmi

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultSMIPath is the binary name used when no explicit path is
// configured. PATH lookup applies.
const DefaultSMIPath = "nvidia-smi"

// defaultTimeout bounds each subprocess invocation. nvidia-smi normally
// answers in well under a second; a hung driver should not stall the panel.
const defaultTimeout = 5 * time.Second

// CommandRunner executes a command and returns its combined stdout. Tests
// inject a fake; production code uses execRunner.
type CommandRunner func(ctx context.Context, name string, args ...string) (string, error)

// Querier shells out to nvidia-smi and assembles complete Readings.
type Querier struct {
	// SMIPath is the nvidia-smi binary path or name. Empty means
	// DefaultSMIPath.
	SMIPath string

	// Timeout bounds each subprocess call. Zero means defaultTimeout.
	Timeout time.Duration

	// run executes subprocesses; replaceable for tests.
	run CommandRunner
}

// NewQuerier returns a Querier that executes the real nvidia-smi binary.
func NewQuerier(smiPath string) *Querier {
	return &Querier{
		SMIPath: smiPath,
		run:     execRunner,
	}
}

// NewQuerierWithRunner returns a Querier backed by a custom CommandRunner.
// Used by tests and mock mode.
func NewQuerierWithRunner(smiPath string, run CommandRunner) *Querier {
	return &Querier{
		SMIPath: smiPath,
		run:     run,
	}
}

// Query runs both diagnostic commands and combines their output into a
// single Reading. Any execution or parse failure makes the whole reading
// unavailable: the panel renders all four values as dashes rather than a
// partial row.
func (q *Querier) Query(ctx context.Context) (Reading, error) {
	ctx, cancel := context.WithTimeout(ctx, q.timeout())
	defer cancel()

	dmonOut, err := q.run(ctx, q.path(), "dmon", "-c", "1")
	if err != nil {
		return Reading{}, fmt.Errorf("%w: dmon: %v", ErrNoData, err)
	}
	util, mem, temp, err := ParseDMon(dmonOut)
	if err != nil {
		return Reading{}, err
	}

	fanOut, err := q.run(ctx, q.path(), "--query-gpu=fan.speed", "--format=csv,noheader,nounits")
	if err != nil {
		return Reading{}, fmt.Errorf("%w: fan query: %v", ErrNoData, err)
	}
	fan, err := ParseFanSpeed(fanOut)
	if err != nil {
		return Reading{}, err
	}

	return Reading{
		Utilization: util,
		Memory:      mem,
		Temperature: temp,
		Fan:         fan,
		Timestamp:   time.Now(),
	}, nil
}

// DeviceName returns the primary GPU's product name via `nvidia-smi -L`,
// e.g. "NVIDIA GeForce RTX 3080". The name is cosmetic (TUI title); errors
// surface as an empty string plus the error so callers can fall back.
func (q *Querier) DeviceName(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, q.timeout())
	defer cancel()

	out, err := q.run(ctx, q.path(), "-L")
	if err != nil {
		return "", fmt.Errorf("nvsmi: list devices: %w", err)
	}
	return parseDeviceName(out), nil
}

// parseDeviceName extracts the product name from a `nvidia-smi -L` line:
//
//	GPU 0: NVIDIA GeForce RTX 3080 (UUID: GPU-...)
func parseDeviceName(output string) string {
	line, ok := firstDataRow(output)
	if !ok {
		return ""
	}
	if i := strings.Index(line, ": "); i >= 0 {
		line = line[i+2:]
	}
	if i := strings.Index(line, " (UUID"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

func (q *Querier) path() string {
	if q.SMIPath != "" {
		return q.SMIPath
	}
	return DefaultSMIPath
}

func (q *Querier) timeout() time.Duration {
	if q.Timeout > 0 {
		return q.Timeout
	}
	return defaultTimeout
}

// execRunner is the production CommandRunner backed by os/exec.
func execRunner(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
