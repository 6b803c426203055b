package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vizscript/vizscript/blackboard/store"
)

// RedisSnapshotStore implements store.SnapshotStore using Redis
type RedisSnapshotStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOptions configuration for Redis connection
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // Key prefix, default "vizscript:"
	TTL      time.Duration // Expiration for snapshots, default 0 (no expiration)
}

// NewRedisSnapshotStore creates a new Redis snapshot store
func NewRedisSnapshotStore(opts RedisOptions) *RedisSnapshotStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "vizscript:"
	}

	return &RedisSnapshotStore{
		client: client,
		prefix: prefix,
		ttl:    opts.TTL,
	}
}

func (s *RedisSnapshotStore) snapshotKey(id string) string {
	return fmt.Sprintf("%ssnapshot:%s", s.prefix, id)
}

func (s *RedisSnapshotStore) boardKey(board string) string {
	return fmt.Sprintf("%sboard:%s:snapshots", s.prefix, board)
}

// Save stores a snapshot
func (s *RedisSnapshotStore) Save(ctx context.Context, snapshot *store.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	key := s.snapshotKey(snapshot.ID)
	pipe := s.client.Pipeline()

	pipe.Set(ctx, key, data, s.ttl)

	// Index by board name so List can find it
	if snapshot.Board != "" {
		boardKey := s.boardKey(snapshot.Board)
		pipe.SAdd(ctx, boardKey, snapshot.ID)
		if s.ttl > 0 {
			pipe.Expire(ctx, boardKey, s.ttl)
		}
	}

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save snapshot to redis: %w", err)
	}

	return nil
}

// Load retrieves a snapshot by ID
func (s *RedisSnapshotStore) Load(ctx context.Context, snapshotID string) (*store.Snapshot, error) {
	key := s.snapshotKey(snapshotID)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("snapshot not found: %s", snapshotID)
		}
		return nil, fmt.Errorf("failed to load snapshot from redis: %w", err)
	}

	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snap, nil
}

// List returns all snapshots of a given board
func (s *RedisSnapshotStore) List(ctx context.Context, board string) ([]*store.Snapshot, error) {
	boardKey := s.boardKey(board)
	snapshotIDs, err := s.client.SMembers(ctx, boardKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots for board %s: %w", board, err)
	}

	if len(snapshotIDs) == 0 {
		return []*store.Snapshot{}, nil
	}

	var keys []string
	for _, id := range snapshotIDs {
		keys = append(keys, s.snapshotKey(id))
	}

	// MGet returns nil for expired keys, which we skip.
	results, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshots: %w", err)
	}

	var snapshots []*store.Snapshot
	for _, result := range results {
		if result == nil {
			continue
		}

		strData, ok := result.(string)
		if !ok {
			continue
		}

		var snap store.Snapshot
		if err := json.Unmarshal([]byte(strData), &snap); err != nil {
			continue
		}
		snapshots = append(snapshots, &snap)
	}

	return snapshots, nil
}

// Delete removes a snapshot
func (s *RedisSnapshotStore) Delete(ctx context.Context, snapshotID string) error {
	// Load first to learn the board for index cleanup
	snap, err := s.Load(ctx, snapshotID)
	if err != nil {
		return err
	}

	key := s.snapshotKey(snapshotID)
	pipe := s.client.Pipeline()

	pipe.Del(ctx, key)

	if snap.Board != "" {
		pipe.SRem(ctx, s.boardKey(snap.Board), snapshotID)
	}

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	return nil
}

// Clear removes all snapshots of a board
func (s *RedisSnapshotStore) Clear(ctx context.Context, board string) error {
	boardKey := s.boardKey(board)
	snapshotIDs, err := s.client.SMembers(ctx, boardKey).Result()
	if err != nil {
		return fmt.Errorf("failed to get snapshots for clearing: %w", err)
	}

	if len(snapshotIDs) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()

	for _, id := range snapshotIDs {
		pipe.Del(ctx, s.snapshotKey(id))
	}

	// Delete the board index too
	pipe.Del(ctx, boardKey)

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}

	return nil
}
