package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vizscript/vizscript/blackboard/store"
)

func TestFileSnapshotStore_New(t *testing.T) {
	t.Parallel()

	t.Run("creates directory if missing", func(t *testing.T) {
		t.Parallel()
		tempDir := t.TempDir()
		snapshotPath := filepath.Join(tempDir, "snapshots")

		fs, err := NewFileSnapshotStore(snapshotPath)
		if err != nil {
			t.Fatalf("Failed to create store: %v", err)
		}

		if fs == nil {
			t.Fatal("Store should not be nil")
		}

		// Verify directory exists
		if _, err := os.Stat(snapshotPath); os.IsNotExist(err) {
			t.Error("Directory should have been created")
		}
	})

	t.Run("works with existing directory", func(t *testing.T) {
		t.Parallel()
		tempDir := t.TempDir()

		fs, err := NewFileSnapshotStore(tempDir)
		if err != nil {
			t.Fatalf("Failed to create store: %v", err)
		}

		if fs == nil {
			t.Fatal("Store should not be nil")
		}
	})
}

func TestFileSnapshotStore_SaveAndLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now()

	t.Run("save creates file", func(t *testing.T) {
		t.Parallel()

		fs, err := NewFileSnapshotStore(t.TempDir())
		if err != nil {
			t.Fatalf("Failed to create store: %v", err)
		}

		snap := &store.Snapshot{
			ID:    "player-save-001",
			Board: "player",
			Entries: map[string]any{
				"health": 87.5,
				"zone":   "crypt-level-2",
			},
			Timestamp: now,
			Version:   1,
		}

		err = fs.Save(ctx, snap)
		if err != nil {
			t.Fatalf("Failed to save: %v", err)
		}

		// Check file exists
		filename := filepath.Join(fs.Path(), snap.ID+".json")
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			t.Error("Snapshot file should exist")
		}
	})

	t.Run("load returns saved snapshot", func(t *testing.T) {
		t.Parallel()

		fs, err := NewFileSnapshotStore(t.TempDir())
		if err != nil {
			t.Fatalf("Failed to create store: %v", err)
		}

		snap := &store.Snapshot{
			ID:    "player-save-001",
			Board: "player",
			Entries: map[string]any{
				"health": 87.5,
				"alive":  true,
				"zone":   "crypt-level-2",
			},
			Timestamp: now,
			Version:   1,
		}

		err = fs.Save(ctx, snap)
		if err != nil {
			t.Fatalf("Failed to save: %v", err)
		}

		loaded, err := fs.Load(ctx, snap.ID)
		if err != nil {
			t.Fatalf("Failed to load: %v", err)
		}

		if loaded.ID != snap.ID {
			t.Errorf("Expected ID %s, got %s", snap.ID, loaded.ID)
		}
		if loaded.Board != snap.Board {
			t.Errorf("Expected Board %s, got %s", snap.Board, loaded.Board)
		}
		if loaded.Version != snap.Version {
			t.Errorf("Expected Version %d, got %d", snap.Version, loaded.Version)
		}

		// JSON numbers are float64
		if loaded.Entries["health"] != 87.5 {
			t.Errorf("Expected health 87.5, got %v", loaded.Entries["health"])
		}
		if loaded.Entries["alive"] != true {
			t.Error("Alive entry mismatch")
		}
		if loaded.Entries["zone"] != "crypt-level-2" {
			t.Error("Zone entry mismatch")
		}
	})

	t.Run("load missing snapshot", func(t *testing.T) {
		t.Parallel()

		fs, err := NewFileSnapshotStore(t.TempDir())
		if err != nil {
			t.Fatalf("Failed to create store: %v", err)
		}

		_, err = fs.Load(ctx, "does-not-exist")
		if err == nil {
			t.Error("Should return error for missing snapshot")
		}
	})
}

func TestFileSnapshotStore_List(t *testing.T) {
	t.Parallel()

	t.Run("filters by board", func(t *testing.T) {
		t.Parallel()

		fs, err := NewFileSnapshotStore(t.TempDir())
		if err != nil {
			t.Fatalf("Failed to create store: %v", err)
		}

		ctx := context.Background()

		snapshots := []struct {
			id      string
			board   string
			version int
		}{
			{"auto-save-2", "player", 2},
			{"auto-save-1", "player", 1},
			{"world-save-1", "world", 1},
		}

		for _, s := range snapshots {
			snap := &store.Snapshot{
				ID:        s.id,
				Board:     s.board,
				Entries:   map[string]any{"health": 50.0},
				Timestamp: time.Now(),
				Version:   s.version,
			}
			if err := fs.Save(ctx, snap); err != nil {
				t.Fatalf("Failed to save snapshot %s: %v", s.id, err)
			}
		}

		results, err := fs.List(ctx, "player")
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}

		if len(results) != 2 {
			t.Fatalf("Expected 2 snapshots for board, got %d", len(results))
		}

		// Check they're sorted by version
		if results[0].Version > results[1].Version {
			t.Error("Results should be sorted by version ascending")
		}
	})

	t.Run("empty result for unknown board", func(t *testing.T) {
		t.Parallel()

		fs, err := NewFileSnapshotStore(t.TempDir())
		if err != nil {
			t.Fatalf("Failed to create store: %v", err)
		}

		ctx := context.Background()
		results, err := fs.List(ctx, "unknown-board")
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}

		if len(results) != 0 {
			t.Errorf("Expected 0 snapshots, got %d", len(results))
		}
	})

	t.Run("skips files that are not snapshots", func(t *testing.T) {
		t.Parallel()

		fs, err := NewFileSnapshotStore(t.TempDir())
		if err != nil {
			t.Fatalf("Failed to create store: %v", err)
		}

		ctx := context.Background()

		snap := &store.Snapshot{ID: "good", Board: "player", Version: 1, Timestamp: time.Now()}
		if err := fs.Save(ctx, snap); err != nil {
			t.Fatalf("Failed to save: %v", err)
		}

		// Drop a garbage file next to it
		garbage := filepath.Join(fs.Path(), "garbage.json")
		if err := os.WriteFile(garbage, []byte("{not json"), 0o600); err != nil {
			t.Fatalf("Failed to write garbage file: %v", err)
		}

		results, err := fs.List(ctx, "player")
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		if len(results) != 1 {
			t.Errorf("Expected 1 snapshot, got %d", len(results))
		}
	})
}

func TestFileSnapshotStore_Delete(t *testing.T) {
	t.Parallel()

	t.Run("deletes existing snapshot", func(t *testing.T) {
		t.Parallel()

		fs, err := NewFileSnapshotStore(t.TempDir())
		if err != nil {
			t.Fatalf("Failed to create store: %v", err)
		}

		ctx := context.Background()

		snap := &store.Snapshot{
			ID:        "temp-snapshot",
			Board:     "player",
			Timestamp: time.Now(),
			Version:   1,
		}

		err = fs.Save(ctx, snap)
		if err != nil {
			t.Fatalf("Failed to save snapshot: %v", err)
		}

		// Verify file exists
		filename := filepath.Join(fs.Path(), snap.ID+".json")
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			t.Fatal("Snapshot file should exist")
		}

		err = fs.Delete(ctx, snap.ID)
		if err != nil {
			t.Fatalf("Failed to delete: %v", err)
		}

		// File should be gone
		if _, err := os.Stat(filename); !os.IsNotExist(err) {
			t.Error("Snapshot file should be deleted")
		}

		// Should not be loadable
		_, err = fs.Load(ctx, snap.ID)
		if err == nil {
			t.Error("Should not be able to load deleted snapshot")
		}
	})

	t.Run("deleting non-existing is no-op", func(t *testing.T) {
		t.Parallel()

		fs, err := NewFileSnapshotStore(t.TempDir())
		if err != nil {
			t.Fatalf("Failed to create store: %v", err)
		}

		ctx := context.Background()

		err = fs.Delete(ctx, "never-existed")
		if err != nil {
			t.Errorf("Delete should not error for non-existing snapshot: %v", err)
		}
	})
}

func TestFileSnapshotStore_Clear(t *testing.T) {
	t.Parallel()

	fs, err := NewFileSnapshotStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	ctx := context.Background()

	snapshots := []struct {
		id      string
		board   string
		version int
	}{
		{"player-1", "player", 1},
		{"player-2", "player", 2},
		{"world-1", "world", 1},
	}

	for _, s := range snapshots {
		snap := &store.Snapshot{
			ID:        s.id,
			Board:     s.board,
			Timestamp: time.Now(),
			Version:   s.version,
		}
		if err := fs.Save(ctx, snap); err != nil {
			t.Fatalf("Failed to save snapshot %s: %v", s.id, err)
		}
	}

	// Verify we have snapshots
	playerList, _ := fs.List(ctx, "player")
	if len(playerList) != 2 {
		t.Fatalf("Expected 2 player snapshots, got %d", len(playerList))
	}

	err = fs.Clear(ctx, "player")
	if err != nil {
		t.Fatalf("Failed to clear board: %v", err)
	}

	// Player board should be empty
	playerList, _ = fs.List(ctx, "player")
	if len(playerList) != 0 {
		t.Errorf("Expected 0 player snapshots after clear, got %d", len(playerList))
	}

	// World board should still have its snapshot
	worldList, _ := fs.List(ctx, "world")
	if len(worldList) != 1 {
		t.Errorf("Expected 1 world snapshot, got %d", len(worldList))
	}
}

func TestFileSnapshotStore_Concurrent(t *testing.T) {
	t.Parallel()

	fs, err := NewFileSnapshotStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	ctx := context.Background()
	numWorkers := 5
	snapshotsPerWorker := 3

	done := make(chan bool, numWorkers)
	errs := make(chan error, numWorkers)

	// Launch workers
	for i := 0; i < numWorkers; i++ {
		go func(workerID int) {
			defer func() { done <- true }()

			for j := 0; j < snapshotsPerWorker; j++ {
				snap := &store.Snapshot{
					ID:    fmt.Sprintf("worker-%d-snapshot-%d", workerID, j),
					Board: fmt.Sprintf("board-%d", workerID),
					Entries: map[string]any{
						"step": float64(j),
					},
					Timestamp: time.Now(),
					Version:   j + 1,
				}

				// Save
				if err := fs.Save(ctx, snap); err != nil {
					errs <- fmt.Errorf("worker %d save failed: %v", workerID, err)
					return
				}

				// Load
				loaded, err := fs.Load(ctx, snap.ID)
				if err != nil {
					errs <- fmt.Errorf("worker %d load failed: %v", workerID, err)
					return
				}

				if loaded.ID != snap.ID {
					errs <- fmt.Errorf("worker %d ID mismatch", workerID)
					return
				}
			}
		}(i)
	}

	// Wait for workers
	for i := 0; i < numWorkers; i++ {
		select {
		case <-done:
			// Worker completed
		case err := <-errs:
			t.Errorf("Worker error: %v", err)
		case <-time.After(5 * time.Second):
			t.Fatal("Test timed out")
		}
	}

	// Verify all snapshots exist
	expectedTotal := numWorkers * snapshotsPerWorker
	files, err := os.ReadDir(fs.Path())
	if err != nil {
		t.Fatalf("Failed to read directory: %v", err)
	}

	jsonCount := 0
	for _, file := range files {
		if !file.IsDir() && filepath.Ext(file.Name()) == ".json" {
			jsonCount++
		}
	}

	if jsonCount != expectedTotal {
		t.Errorf("Expected %d snapshot files, got %d", expectedTotal, jsonCount)
	}
}
