package mocks

import (
	"context"
	"testing"

	"github.com/chesterbait88/NV-Stats/pkg/nvsmi"
)

func TestRunnerProducesParseableOutput(t *testing.T) {
	q := nvsmi.NewQuerierWithRunner("nvidia-smi", RunnerWithSeed(1))

	for i := 0; i < 10; i++ {
		r, err := q.Query(context.Background())
		if err != nil {
			t.Fatalf("Query %d failed: %v", i, err)
		}
		if r.Utilization < 0 || r.Utilization > 100 {
			t.Errorf("Utilization = %d, want 0-100", r.Utilization)
		}
		if r.Fan < 0 || r.Fan > 100 {
			t.Errorf("Fan = %d, want 0-100", r.Fan)
		}
		if r.Temperature < 40 || r.Temperature > 110 {
			t.Errorf("Temperature = %d, want a plausible value", r.Temperature)
		}
	}
}

func TestRunnerDeterministicWithSeed(t *testing.T) {
	q1 := nvsmi.NewQuerierWithRunner("nvidia-smi", RunnerWithSeed(42))
	q2 := nvsmi.NewQuerierWithRunner("nvidia-smi", RunnerWithSeed(42))

	r1, err1 := q1.Query(context.Background())
	r2, err2 := q2.Query(context.Background())
	if err1 != nil || err2 != nil {
		t.Fatalf("Query failed: %v, %v", err1, err2)
	}
	if r1.Utilization != r2.Utilization || r1.Temperature != r2.Temperature {
		t.Errorf("same seed should walk identically: %+v vs %+v", r1, r2)
	}
}

func TestRunnerDeviceName(t *testing.T) {
	q := nvsmi.NewQuerierWithRunner("nvidia-smi", RunnerWithSeed(1))

	name, err := q.DeviceName(context.Background())
	if err != nil {
		t.Fatalf("DeviceName failed: %v", err)
	}
	if name == "" {
		t.Error("DeviceName should not be empty")
	}
}
