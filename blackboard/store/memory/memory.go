// Package memory provides an in-process snapshot store backed by a map.
//
// Nothing is persisted across restarts; use it in tests and short-lived
// tools, or as a reference implementation for other backends.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vizscript/vizscript/blackboard/store"
)

// MemorySnapshotStore implements store.SnapshotStore with an in-process map
type MemorySnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string]*store.Snapshot
}

// NewMemorySnapshotStore creates an empty in-memory snapshot store
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{
		snapshots: make(map[string]*store.Snapshot),
	}
}

// Save stores a snapshot
func (s *MemorySnapshotStore) Save(_ context.Context, snapshot *store.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *snapshot
	s.snapshots[snapshot.ID] = &cp
	return nil
}

// Load retrieves a snapshot by ID
func (s *MemorySnapshotStore) Load(_ context.Context, snapshotID string) (*store.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[snapshotID]
	if !ok {
		return nil, fmt.Errorf("snapshot not found: %s", snapshotID)
	}
	cp := *snap
	return &cp, nil
}

// List returns all snapshots of a given board, sorted by version ascending
func (s *MemorySnapshotStore) List(_ context.Context, board string) ([]*store.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var snapshots []*store.Snapshot
	for _, snap := range s.snapshots {
		if snap.Board == board {
			cp := *snap
			snapshots = append(snapshots, &cp)
		}
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Version < snapshots[j].Version
	})
	return snapshots, nil
}

// Delete removes a snapshot; deleting a missing ID is a no-op
func (s *MemorySnapshotStore) Delete(_ context.Context, snapshotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.snapshots, snapshotID)
	return nil
}

// Clear removes all snapshots of a board
func (s *MemorySnapshotStore) Clear(_ context.Context, board string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, snap := range s.snapshots {
		if snap.Board == board {
			delete(s.snapshots, id)
		}
	}
	return nil
}
