// Package sqlite provides SQLite-backed storage for blackboard snapshots.
//
// SQLite is serverless and file-based, so this backend needs no
// configuration beyond a path. Good for desktop tooling, development and
// single-process games; for multiple writers across machines use the
// postgres backend.
//
// # Basic Usage
//
//	s, err := sqlite.NewSqliteSnapshotStore(sqlite.SqliteOptions{
//		Path: "./saves.db",
//	})
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
//	err = s.Save(ctx, store.Capture(board, 1))
//
// The table is created on first use. A custom table name can be set with
// SqliteOptions.TableName, for example to keep several games in one file.
package sqlite
