// Package jsonfile implements the checklist persistence port using a single
// JSON file on disk.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hay-kot/steplock/internal/core/checklist"
)

// SnapshotStore implements checklist.SnapshotStore using a JSON file.
type SnapshotStore struct {
	path string
	mu   sync.RWMutex
}

var _ checklist.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a JSON file snapshot store at the given path.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Load reads the snapshot from disk. A missing or empty file yields an
// empty snapshot; a malformed file is a checklist.ErrBadSnapshot.
func (s *SnapshotStore) Load() (checklist.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return checklist.Snapshot{}, nil
		}
		return checklist.Snapshot{}, fmt.Errorf("read snapshot file: %w", err)
	}

	if len(data) == 0 {
		return checklist.Snapshot{}, nil
	}

	return checklist.DecodeSnapshot(data)
}

// Save writes the snapshot atomically: marshal, write to a temp file in the
// same directory, then rename over the target.
func (s *SnapshotStore) Save(snap checklist.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.Items == nil {
		snap.Items = []checklist.Item{}
	}
	if snap.CompletedIDs == nil {
		snap.CompletedIDs = []string{}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}

	return nil
}
