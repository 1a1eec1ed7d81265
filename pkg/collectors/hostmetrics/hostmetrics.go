// Package hostmetrics provides an optional host CPU and memory collector
// so the GPU numbers have context. It uses gopsutil and works on both
// Linux and Darwin without /proc dependencies.
package hostmetrics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// Config controls the hostmetrics collector behaviour.
type Config struct {
	// Interval is the polling rate (default 5s). Host numbers move slower
	// than GPU numbers and are polled less often.
	Interval time.Duration
}

// Metrics is the snapshot returned by Collect.
type Metrics struct {
	CPUPercent float64   `json:"cpu_percent"`
	MemPercent float64   `json:"mem_percent"`
	MemUsed    uint64    `json:"mem_used"`
	MemTotal   uint64    `json:"mem_total"`
	Load1      float64   `json:"load1"`
	Timestamp  time.Time `json:"timestamp"`
}

// Collector gathers host metrics via gopsutil. It satisfies the
// pkg/collectors.Collector interface.
type Collector struct {
	cfg     Config
	mu      sync.Mutex
	healthy bool
}

// New creates a Collector. A non-positive interval gets the default.
func New(cfg Config) *Collector {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	return &Collector{cfg: cfg, healthy: true}
}

// Name returns the collector's unique identifier.
func (c *Collector) Name() string {
	return "hostmetrics"
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

func (c *Collector) setHealthy(h bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.healthy = h
}

// Collect gathers CPU, memory, and load in one pass. CPU and memory are
// required; load average is best effort (unavailable on some platforms).
func (c *Collector) Collect(ctx context.Context) (interface{}, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	m := Metrics{Timestamp: time.Now()}

	total, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		c.setHealthy(false)
		return nil, fmt.Errorf("hostmetrics: cpu: %w", err)
	}
	if len(total) > 0 {
		m.CPUPercent = total[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		c.setHealthy(false)
		return nil, fmt.Errorf("hostmetrics: memory: %w", err)
	}
	m.MemPercent = vm.UsedPercent
	m.MemUsed = vm.Used
	m.MemTotal = vm.Total

	if avg, err := load.AvgWithContext(ctx); err == nil {
		m.Load1 = avg.Load1
	}

	c.setHealthy(true)
	return m, nil
}
