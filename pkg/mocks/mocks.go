// Package mocks generates synthetic nvidia-smi output for demos and
// testing on machines without an NVIDIA GPU. The generator feeds the real
// parse path: it emits dmon-format and fan-query text, not pre-built
// readings.
package mocks

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/chesterbait88/NV-Stats/pkg/nvsmi"
)

// state is a random walk over plausible GPU values.
type state struct {
	mu   sync.Mutex
	rng  *rand.Rand
	util int
	mem  int
	temp int
	fan  int
}

func newState(seed int64) *state {
	return &state{
		rng:  rand.New(rand.NewSource(seed)),
		util: 35,
		mem:  20,
		temp: 55,
		fan:  30,
	}
}

// step advances each value by a small random delta, clamped to its range.
func (s *state) step() {
	s.util = clamp(s.util+s.rng.Intn(21)-10, 0, 100)
	s.mem = clamp(s.mem+s.rng.Intn(11)-5, 0, 100)
	// Temperature loosely follows utilization.
	target := 45 + s.util/3
	if s.temp < target {
		s.temp++
	} else if s.temp > target {
		s.temp--
	}
	// Fan chases temperature.
	s.fan = clamp((s.temp-30)*2, 0, 100)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Runner returns a CommandRunner producing synthetic nvidia-smi output.
// Each dmon invocation advances the random walk; the paired fan query
// reads the same state.
func Runner() nvsmi.CommandRunner {
	return RunnerWithSeed(rand.Int63())
}

// RunnerWithSeed returns a deterministic synthetic runner for tests.
func RunnerWithSeed(seed int64) nvsmi.CommandRunner {
	s := newState(seed)
	return func(ctx context.Context, name string, args ...string) (string, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if len(args) == 0 {
			return "", fmt.Errorf("mocks: no arguments")
		}
		switch args[0] {
		case "dmon":
			s.step()
			return fmt.Sprintf(
				"# gpu   pwr gtemp mtemp    sm   mem   enc   dec  mclk  pclk\n"+
					"# Idx     W     C     C     %%     %%     %%     %%   MHz   MHz\n"+
					"    0   120   %3d     -   %3d   %3d     0     0  9501  1875\n",
				s.temp, s.util, s.mem), nil
		case "-L":
			return "GPU 0: NVIDIA GeForce RTX 3080 (Mock) (UUID: GPU-00000000)\n", nil
		default:
			// fan query
			return fmt.Sprintf("%d\n", s.fan), nil
		}
	}
}
