package collectors

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultUpdateBufferSize is the recommended capacity for the updates
// channel. A buffer this deep absorbs bursts from several collectors
// firing on the same tick without blocking their goroutines.
const DefaultUpdateBufferSize = 16

// Runner drives registered collectors on their own tickers and fans
// results into a single updates channel. Each collector gets one
// goroutine; a slow or failing collector never delays the others.
type Runner struct {
	registry *Registry
	updates  chan<- Update

	mu       sync.Mutex
	started  bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	rescales map[string]chan time.Duration
}

// NewRunner creates a runner over the given registry. Collection results
// and errors are delivered on updates; the caller owns the channel.
func NewRunner(registry *Registry, updates chan<- Update) *Runner {
	return &Runner{
		registry: registry,
		updates:  updates,
		rescales: make(map[string]chan time.Duration),
	}
}

// Start launches one goroutine per registered collector. Each collector
// runs immediately, then on its Interval. Start returns an error only if
// the runner is already started.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return fmt.Errorf("runner already started")
	}
	r.started = true

	ctx, r.cancel = context.WithCancel(ctx)

	for _, name := range r.registry.List() {
		c, ok := r.registry.Get(name)
		if !ok {
			continue
		}
		rescale := make(chan time.Duration, 1)
		r.rescales[name] = rescale

		r.wg.Add(1)
		go r.loop(ctx, c, rescale)
	}
	return nil
}

// Stop cancels all collector goroutines and waits for them to exit. It is
// safe to call Stop multiple times or without a prior Start.
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()

	r.wg.Wait()
}

// SetInterval restarts the named collector's ticker with a new period.
// The change takes effect without waiting out the old interval. Returns
// an error if the collector is not running.
func (r *Runner) SetInterval(name string, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("interval must be positive, got %v", d)
	}

	r.mu.Lock()
	rescale, ok := r.rescales[name]
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("collector %q is not running", name)
	}

	// Replace any pending rescale rather than blocking.
	select {
	case <-rescale:
	default:
	}
	rescale <- d
	return nil
}

// RunOnce triggers a single collection cycle for the named collector,
// outside its normal schedule. The result is returned directly and also
// recorded in the registry status.
func (r *Runner) RunOnce(ctx context.Context, name string) (interface{}, error) {
	c, ok := r.registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("collector %q not registered", name)
	}
	u := r.collect(ctx, c)
	if u == nil {
		return nil, ctx.Err()
	}
	return u.Data, u.Error
}

// Health returns the current healthy flag for every registered collector.
func (r *Runner) Health() map[string]bool {
	statuses := r.registry.AllStatus()
	health := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		health[s.Name] = s.Healthy
	}
	return health
}

// loop is the per-collector goroutine: collect immediately, then on each
// tick, resetting the ticker when a rescale arrives.
func (r *Runner) loop(ctx context.Context, c Collector, rescale <-chan time.Duration) {
	defer r.wg.Done()

	r.deliver(ctx, c)

	ticker := time.NewTicker(c.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case d := <-rescale:
			ticker.Reset(d)
			r.deliver(ctx, c)
		case <-ticker.C:
			r.deliver(ctx, c)
		}
	}
}

// deliver runs one collection and pushes the result onto the updates
// channel, dropping it if the consumer has gone away.
func (r *Runner) deliver(ctx context.Context, c Collector) {
	u := r.collect(ctx, c)
	if u == nil {
		return
	}
	select {
	case r.updates <- *u:
	case <-ctx.Done():
	}
}

// collect runs one cycle and records status. Returns nil when the context
// was already cancelled before the cycle started.
func (r *Runner) collect(ctx context.Context, c Collector) *Update {
	if ctx.Err() != nil {
		return nil
	}

	start := time.Now()
	data, err := c.Collect(ctx)
	latency := time.Since(start)

	r.registry.updateStatus(c.Name(), func(s *CollectorStatus) {
		s.LastRun = start
		s.LastLatency = latency
		s.RunCount++
		s.LastError = err
		if err != nil {
			s.ErrorCount++
			s.Healthy = false
		} else {
			s.Healthy = true
		}
	})

	return &Update{
		Source:    c.Name(),
		Data:      data,
		Timestamp: start,
		Error:     err,
	}
}
