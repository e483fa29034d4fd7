package checklist

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Snapshot is the serialized transport form of the full checklist state.
type Snapshot struct {
	Items        []Item   `json:"items"`
	CompletedIDs []string `json:"completedIds"`
}

// SnapshotStore is the persistence port for checklist state. The item store
// loads once at construction and saves after every successful mutation.
type SnapshotStore interface {
	Load() (Snapshot, error)
	Save(Snapshot) error
}

// DecodeSnapshot parses a snapshot payload, enforcing the import contract:
// both "items" and "completedIds" must be present and array-typed. Anything
// else is a format error so the caller can leave current state untouched.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var raw struct {
		Items        json.RawMessage `json:"items"`
		CompletedIDs json.RawMessage `json:"completedIds"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrBadSnapshot, err)
	}

	if !isJSONArray(raw.Items) {
		return Snapshot{}, fmt.Errorf("%w: items is not an array", ErrBadSnapshot)
	}
	if !isJSONArray(raw.CompletedIDs) {
		return Snapshot{}, fmt.Errorf("%w: completedIds is not an array", ErrBadSnapshot)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw.Items, &snap.Items); err != nil {
		return Snapshot{}, fmt.Errorf("%w: items: %s", ErrBadSnapshot, err)
	}
	if err := json.Unmarshal(raw.CompletedIDs, &snap.CompletedIDs); err != nil {
		return Snapshot{}, fmt.Errorf("%w: completedIds: %s", ErrBadSnapshot, err)
	}

	return snap, nil
}

// Validate checks snapshot-level invariants beyond JSON shape.
func (s Snapshot) Validate() error {
	seen := make(map[string]bool, len(s.Items))
	for _, item := range s.Items {
		if item.ID == "" {
			return fmt.Errorf("%w: item with empty id", ErrBadSnapshot)
		}
		if seen[item.ID] {
			return fmt.Errorf("%w: duplicate item id %q", ErrBadSnapshot, item.ID)
		}
		seen[item.ID] = true
	}
	return nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
