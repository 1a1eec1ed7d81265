// Package snapshot persists the most recent GPU reading to disk so that
// short-lived invocations (the one-shot panel mode) can render without
// waiting on a fresh nvidia-smi run. The snapshot is a single JSON file
// written atomically via temp-file-then-rename.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chesterbait88/NV-Stats/pkg/nvsmi"
)

const fileName = "last-reading.json"

// ErrStale is returned by Load when the stored reading is older than the
// caller's freshness window.
var ErrStale = errors.New("snapshot: reading is stale")

// Store reads and writes the last-reading snapshot in a directory.
type Store struct {
	dir string
}

// NewStore creates a snapshot store rooted at dir. The directory is
// created with 0755 permissions if it does not exist.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("snapshot: create directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return filepath.Join(s.dir, fileName)
}

// Save persists the reading. The reading's own Timestamp is used for
// freshness checks on Load.
func (s *Store) Save(r nvsmi.Reading) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("snapshot: marshal reading: %w", err)
	}
	if err := atomicWrite(s.Path(), data, s.dir); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", s.Path(), err)
	}
	return nil
}

// Load returns the stored reading if one exists and its timestamp is
// within maxAge of now. A maxAge of 0 skips the freshness check.
// Returns os.ErrNotExist if no snapshot has ever been written and
// ErrStale if the stored reading is too old.
func (s *Store) Load(maxAge time.Duration) (nvsmi.Reading, error) {
	var r nvsmi.Reading

	data, err := os.ReadFile(s.Path())
	if err != nil {
		return r, err
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("snapshot: decode %s: %w", s.Path(), err)
	}
	if maxAge > 0 && time.Since(r.Timestamp) > maxAge {
		return r, ErrStale
	}
	return r, nil
}

// Clear removes the snapshot file. Missing files are not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("snapshot: remove %s: %w", s.Path(), err)
	}
	return nil
}

// atomicWrite writes data to path via a temporary file and rename.
func atomicWrite(path string, data []byte, tmpDir string) error {
	tmp, err := os.CreateTemp(tmpDir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	success = true
	return nil
}
