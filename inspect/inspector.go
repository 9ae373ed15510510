// Package inspect provides UI introspection for debugging and automated
// testing. A snapshot describes the grid geometry and every rendered box
// without needing to look at the terminal.
package inspect

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Introspectable is implemented by UI components that can report their state.
type Introspectable interface {
	// InspectNode returns a structured representation of this component.
	InspectNode() *Node
}

const (
	envInspect     = "MASONRY_INSPECT"
	envInspectFile = "MASONRY_INSPECT_FILE"
)

var (
	enabled     bool
	enabledOnce sync.Once
	inspectFile string
)

// IsEnabled reports whether snapshots are written after every layout. It is
// on when MASONRY_INSPECT=1 or MASONRY_INSPECT_FILE names an output file.
func IsEnabled() bool {
	enabledOnce.Do(func() {
		inspectFile = os.Getenv(envInspectFile)
		enabled = os.Getenv(envInspect) == "1" || inspectFile != ""
		if enabled && inspectFile == "" {
			inspectFile = filepath.Join(os.TempDir(), "masonry-inspect.json")
		}
	})
	return enabled
}

// GetInspectFile returns the path to the inspection output file, or "" when
// inspection is off.
func GetInspectFile() string {
	if !IsEnabled() {
		return ""
	}
	return inspectFile
}

// Marshal encodes a snapshot as indented JSON.
func Marshal(snapshot *Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// WriteSnapshot writes a snapshot to the inspection file when inspection is
// enabled.
func WriteSnapshot(snapshot *Snapshot) error {
	if !IsEnabled() {
		return nil
	}
	return WriteSnapshotToPath(snapshot, inspectFile)
}

// WriteSnapshotToPath replaces the file at path with the snapshot. Readers
// polling the file never see a partial write.
func WriteSnapshotToPath(snapshot *Snapshot, path string) error {
	data, err := Marshal(snapshot)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
