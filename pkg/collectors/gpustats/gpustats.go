// Package gpustats provides the NVIDIA GPU collector for NV-Stats. It
// wraps the nvidia-smi querier, survives panics from malformed tool
// output, and keeps its failure logging quiet during long outages (a
// missing driver would otherwise log once per poll, forever).
package gpustats

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chesterbait88/NV-Stats/pkg/nvsmi"
	"github.com/chesterbait88/NV-Stats/pkg/snapshot"
)

// Config controls the gpustats collector behaviour.
type Config struct {
	// Interval is the polling rate (default 2s).
	Interval time.Duration

	// SMIPath is the nvidia-smi executable path or name (default from
	// nvsmi.DefaultSMIPath).
	SMIPath string

	// Timeout bounds each nvidia-smi invocation.
	Timeout time.Duration

	// FailureEvery controls failure log suppression: the first failure of
	// a streak is always logged, then every FailureEvery-th after it.
	// Default 60, which at the default interval is about once every two
	// minutes.
	FailureEvery int

	// Snapshots, when non-nil, receives every successful reading so that
	// one-shot invocations can render from the last known state.
	Snapshots *snapshot.Store

	// Logger receives failure and recovery messages. Defaults to
	// slog.Default.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval:     2 * time.Second,
		SMIPath:      nvsmi.DefaultSMIPath,
		FailureEvery: 60,
	}
}

// Collector polls nvidia-smi for GPU stats. It satisfies the
// pkg/collectors.Collector interface (Name, Collect, Interval, Healthy).
type Collector struct {
	cfg     Config
	querier *nvsmi.Querier
	log     *slog.Logger

	mu       sync.Mutex
	healthy  bool
	failures int64 // consecutive failures in the current streak
}

// New creates a Collector with the given configuration. Zero-value fields
// in cfg are replaced with defaults.
func New(cfg Config) *Collector {
	return newCollector(cfg, nil)
}

// NewWithQuerier creates a Collector that uses a pre-built querier. Tests
// use this to inject a fake command runner.
func NewWithQuerier(cfg Config, q *nvsmi.Querier) *Collector {
	return newCollector(cfg, q)
}

func newCollector(cfg Config, q *nvsmi.Querier) *Collector {
	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.SMIPath == "" {
		cfg.SMIPath = def.SMIPath
	}
	if cfg.FailureEvery <= 0 {
		cfg.FailureEvery = def.FailureEvery
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if q == nil {
		q = nvsmi.NewQuerier(cfg.SMIPath)
		q.Timeout = cfg.Timeout
	}
	return &Collector{
		cfg:     cfg,
		querier: q,
		log:     cfg.Logger,
		healthy: true,
	}
}

// Name returns the collector's unique identifier.
func (c *Collector) Name() string {
	return "gpustats"
}

// Interval returns the polling interval.
func (c *Collector) Interval() time.Duration {
	return c.cfg.Interval
}

// Healthy reports whether the last collection succeeded.
func (c *Collector) Healthy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.healthy
}

// Collect runs one nvidia-smi poll and returns the reading. There is no
// retry inside a cycle; the next tick is the retry. A panic while
// querying or parsing is recovered and reported as an ordinary failure.
func (c *Collector) Collect(ctx context.Context) (data interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = fmt.Errorf("gpustats: recovered from panic: %v", r)
			c.recordFailure(err)
		}
	}()

	reading, qerr := c.querier.Query(ctx)
	if qerr != nil {
		c.recordFailure(qerr)
		return nil, qerr
	}

	c.recordSuccess()

	if c.cfg.Snapshots != nil {
		if serr := c.cfg.Snapshots.Save(reading); serr != nil {
			c.log.Debug("snapshot save failed", "error", serr)
		}
	}

	return reading, nil
}

// recordFailure marks the collector unhealthy and logs the failure with
// suppression: the first failure of a streak is logged, then every
// FailureEvery-th.
func (c *Collector) recordFailure(err error) {
	c.mu.Lock()
	c.healthy = false
	c.failures++
	n := c.failures
	c.mu.Unlock()

	if n == 1 || n%int64(c.cfg.FailureEvery) == 0 {
		c.log.Warn("gpu query failed",
			"error", err,
			"consecutive_failures", n)
	}
}

// recordSuccess marks the collector healthy again, logging the recovery
// once if a failure streak just ended.
func (c *Collector) recordSuccess() {
	c.mu.Lock()
	wasFailing := c.failures > 0
	streak := c.failures
	c.failures = 0
	c.healthy = true
	c.mu.Unlock()

	if wasFailing {
		c.log.Info("gpu query recovered", "failed_polls", streak)
	}
}
