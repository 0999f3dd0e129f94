package usercache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Store persists user-cache snapshots across restarts.
type Store interface {
	// Read returns the stored snapshot, or (nil, nil) when absent.
	Read() (*Snapshot, error)

	// Write persists the snapshot.
	Write(Snapshot) error
}

// FileStore keeps the snapshot in a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Read() (*Snapshot, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read user cache file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse user cache file: %w", err)
	}
	return &snap, nil
}

func (s *FileStore) Write(snap Snapshot) error {
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user cache: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write user cache file: %w", err)
	}
	return nil
}
