// Package redis provides Redis-backed storage for blackboard snapshots.
//
// Snapshots are stored as JSON values under a configurable key prefix, with
// a per-board index set so List stays cheap. An optional TTL expires old
// snapshots automatically, which suits session state that should not
// outlive the player.
//
// # Basic Usage
//
//	s := redis.NewRedisSnapshotStore(redis.RedisOptions{
//		Addr:     "localhost:6379",
//		Password: "",
//		DB:       0,
//		Prefix:   "vizscript:",
//		TTL:      24 * time.Hour,
//	})
//
//	err := s.Save(ctx, store.Capture(board, 1))
//
// # Key Layout
//
//	{prefix}snapshot:{snapshot_id}        JSON snapshot body
//	{prefix}board:{board}:snapshots       set of snapshot IDs per board
//
// With TTL enabled the index set expires alongside the snapshots; List
// silently skips index members whose snapshot key already expired.
package redis
