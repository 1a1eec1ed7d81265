package snapshot

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/chesterbait88/NV-Stats/pkg/nvsmi"
)

func TestSaveAndLoad(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	want := nvsmi.Reading{
		Utilization: 55,
		Memory:      23,
		Temperature: 61,
		Fan:         40,
		Timestamp:   time.Now(),
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(time.Minute)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Utilization != want.Utilization || got.Temperature != want.Temperature {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestLoadMissing(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if _, err := s.Load(time.Minute); !os.IsNotExist(err) {
		t.Errorf("Load on empty store: err = %v, want not-exist", err)
	}
}

func TestLoadStale(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	old := nvsmi.Reading{Temperature: 61, Timestamp: time.Now().Add(-time.Hour)}
	if err := s.Save(old); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := s.Load(time.Minute); !errors.Is(err, ErrStale) {
		t.Errorf("Load stale: err = %v, want ErrStale", err)
	}

	// maxAge 0 skips the freshness check
	if _, err := s.Load(0); err != nil {
		t.Errorf("Load with no freshness window: %v", err)
	}
}

func TestSaveOverwrites(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if err := s.Save(nvsmi.Reading{Temperature: 50, Timestamp: time.Now()}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(nvsmi.Reading{Temperature: 70, Timestamp: time.Now()}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(time.Minute)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Temperature != 70 {
		t.Errorf("Temperature = %d, want 70", got.Temperature)
	}
}

func TestClear(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if err := s.Clear(); err != nil {
		t.Errorf("Clear on empty store: %v", err)
	}

	if err := s.Save(nvsmi.Reading{Timestamp: time.Now()}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := s.Load(0); !os.IsNotExist(err) {
		t.Errorf("Load after Clear: err = %v, want not-exist", err)
	}
}
