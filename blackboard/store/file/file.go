// Package file provides a snapshot store that writes one JSON file per
// snapshot into a directory.
//
// Snapshots are plain files, so they can be inspected and diffed with
// standard tools. Suitable for desktop tooling and local development; for
// concurrent multi-process access use the sqlite or postgres backends.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/vizscript/vizscript/blackboard/store"
)

// FileSnapshotStore implements store.SnapshotStore with one JSON file per
// snapshot
type FileSnapshotStore struct {
	mu   sync.Mutex
	path string
}

// NewFileSnapshotStore creates a snapshot store rooted at path, creating
// the directory if it does not exist
func NewFileSnapshotStore(path string) (*FileSnapshotStore, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &FileSnapshotStore{path: path}, nil
}

// Path returns the directory snapshots are written to.
func (s *FileSnapshotStore) Path() string {
	return s.path
}

func (s *FileSnapshotStore) filename(snapshotID string) string {
	return filepath.Join(s.path, snapshotID+".json")
}

// Save stores a snapshot
func (s *FileSnapshotStore) Save(_ context.Context, snapshot *store.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.filename(snapshot.ID), data, 0o600); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	return nil
}

// Load retrieves a snapshot by ID
func (s *FileSnapshotStore) Load(_ context.Context, snapshotID string) (*store.Snapshot, error) {
	s.mu.Lock()
	data, err := os.ReadFile(s.filename(snapshotID))
	s.mu.Unlock()

	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("snapshot not found: %s", snapshotID)
		}
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// List returns all snapshots of a given board, sorted by version ascending
func (s *FileSnapshotStore) List(ctx context.Context, board string) ([]*store.Snapshot, error) {
	s.mu.Lock()
	files, err := os.ReadDir(s.path)
	s.mu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot directory: %w", err)
	}

	var snapshots []*store.Snapshot
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
			continue
		}
		id := strings.TrimSuffix(f.Name(), ".json")
		snap, err := s.Load(ctx, id)
		if err != nil {
			// Files that don't parse as snapshots are skipped.
			continue
		}
		if snap.Board == board {
			snapshots = append(snapshots, snap)
		}
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Version < snapshots[j].Version
	})
	return snapshots, nil
}

// Delete removes a snapshot; deleting a missing ID is a no-op
func (s *FileSnapshotStore) Delete(_ context.Context, snapshotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.filename(snapshotID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete snapshot file: %w", err)
	}
	return nil
}

// Clear removes all snapshots of a board
func (s *FileSnapshotStore) Clear(ctx context.Context, board string) error {
	snapshots, err := s.List(ctx, board)
	if err != nil {
		return err
	}
	for _, snap := range snapshots {
		if err := s.Delete(ctx, snap.ID); err != nil {
			return err
		}
	}
	return nil
}
