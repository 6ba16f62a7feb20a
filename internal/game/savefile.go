package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// MarshalSnapshot encodes a snapshot as JSON for ".json" paths and YAML otherwise.
func MarshalSnapshot(path string, snap Snapshot) ([]byte, error) {
	if isJSONPath(path) {
		return json.MarshalIndent(snap, "", "  ")
	}
	return yaml.Marshal(snap)
}

// UnmarshalSnapshot is the inverse of MarshalSnapshot.
func UnmarshalSnapshot(path string, data []byte) (Snapshot, error) {
	var snap Snapshot
	var err error
	if isJSONPath(path) {
		err = json.Unmarshal(data, &snap)
	} else {
		err = yaml.Unmarshal(data, &snap)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return snap, nil
}

// WriteSaveFile stores the match snapshot at path.
func WriteSaveFile(path string, snap Snapshot) error {
	data, err := MarshalSnapshot(path, snap)
	if err != nil {
		return fmt.Errorf("encode save file: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSaveFile loads and validates a snapshot from path.
func ReadSaveFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, err
	}
	snap, err := UnmarshalSnapshot(path, data)
	if err != nil {
		return Snapshot{}, err
	}
	if err := snap.Validate(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func isJSONPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
