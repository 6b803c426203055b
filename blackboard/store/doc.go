// Package store provides storage implementations for persisting blackboard
// snapshots.
//
// A snapshot captures the save-flagged entries of a board so game state can
// survive process restarts, be inspected offline, or be shared between
// machines. All backends implement the same SnapshotStore interface:
//
//	type SnapshotStore interface {
//	    Save(ctx context.Context, snapshot *Snapshot) error
//	    Load(ctx context.Context, snapshotID string) (*Snapshot, error)
//	    List(ctx context.Context, board string) ([]*Snapshot, error)
//	    Delete(ctx context.Context, snapshotID string) error
//	    Clear(ctx context.Context, board string) error
//	}
//
// # Available Implementations
//
//   - store/memory: in-process map, for tests and single-run tools
//   - store/file: one JSON file per snapshot, zero configuration
//   - store/sqlite: serverless file database with ACID transactions
//   - store/postgres: production deployments with connection pooling
//   - store/redis: low latency, TTL-based expiry, shared between processes
//
// # Basic Usage
//
//	board := blackboard.New("player")
//	board.Register("health", 100.0, blackboard.FlagSave)
//
//	snap := store.Capture(board, 1)
//	if err := backend.Save(ctx, snap); err != nil {
//	    return err
//	}
//
//	// Later, or on another machine:
//	loaded, err := backend.Load(ctx, snap.ID)
//	if err != nil {
//	    return err
//	}
//	err = loaded.Apply(board)
package store
