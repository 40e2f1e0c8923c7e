package store

import (
	"encoding/json"
	"fmt"

	"github.com/brownbearcreative/bard/internal/engine"
)

// Well-known namespace and keys of the device save slot. The namespace is
// shared by the host (sleep marker) and the engine snapshot, mirroring how
// the firmware shares one NVS namespace.
const (
	Namespace = "bards"

	KeySnapshot = "snapshot"
	KeySlept    = "slept"
	KeySession  = "session"
)

// MarshalSnapshot serializes an engine snapshot as versioned JSON.
func MarshalSnapshot(snap engine.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot parses a persisted snapshot blob.
//
// Only structural decoding happens here; semantic validation (index ranges,
// ring bookkeeping, version marker) is the engine's job on Restore, so a
// blob that decodes but lies about its contents still cannot corrupt state.
func UnmarshalSnapshot(data []byte) (engine.Snapshot, error) {
	var snap engine.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return engine.Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snap, nil
}
