package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vizscript/vizscript/blackboard"
)

// Snapshot captures the persistent entries of a blackboard at one point in
// time.
type Snapshot struct {
	ID        string         `json:"id"`
	Board     string         `json:"board"`
	Entries   map[string]any `json:"entries"`
	Timestamp time.Time      `json:"timestamp"`
	Version   int            `json:"version"`
}

// SnapshotStore defines the interface for snapshot persistence
type SnapshotStore interface {
	// Save stores a snapshot
	Save(ctx context.Context, snapshot *Snapshot) error

	// Load retrieves a snapshot by ID
	Load(ctx context.Context, snapshotID string) (*Snapshot, error)

	// List returns all snapshots of a given board
	List(ctx context.Context, board string) ([]*Snapshot, error)

	// Delete removes a snapshot
	Delete(ctx context.Context, snapshotID string) error

	// Clear removes all snapshots of a board
	Clear(ctx context.Context, board string) error
}

// Capture builds a snapshot of the board's save-flagged entries with a
// fresh random ID. Unflagged entries are not captured.
func Capture(b *blackboard.Blackboard, version int) *Snapshot {
	entries := make(map[string]any)
	for name, e := range b.Entries() {
		if e.Flags&blackboard.FlagSave != 0 {
			entries[name] = e.Value
		}
	}
	return &Snapshot{
		ID:        uuid.NewString(),
		Board:     b.Name(),
		Entries:   entries,
		Timestamp: time.Now(),
		Version:   version,
	}
}

// Apply writes the snapshot entries back onto the board. Entries are
// registered as save-flagged, so a later Capture sees them again;
// overlapping values are overwritten.
func (s *Snapshot) Apply(b *blackboard.Blackboard) error {
	for name, value := range s.Entries {
		b.Register(name, value, blackboard.FlagSave)
		if err := b.SetForce(name, value); err != nil {
			return err
		}
	}
	return nil
}
