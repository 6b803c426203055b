package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vizscript/vizscript/blackboard/store"
)

// DBPool defines the interface for database connection pool
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresSnapshotStore implements store.SnapshotStore using PostgreSQL
type PostgresSnapshotStore struct {
	pool      DBPool
	tableName string
}

// PostgresOptions configuration for Postgres connection
type PostgresOptions struct {
	ConnString string
	TableName  string // Default "snapshots"
}

// NewPostgresSnapshotStore creates a new Postgres snapshot store
func NewPostgresSnapshotStore(ctx context.Context, opts PostgresOptions) (*PostgresSnapshotStore, error) {
	pool, err := pgxpool.New(ctx, opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "snapshots"
	}

	return &PostgresSnapshotStore{
		pool:      pool,
		tableName: tableName,
	}, nil
}

// NewPostgresSnapshotStoreWithPool creates a new Postgres snapshot store
// with an existing pool. Useful for testing with mocks
func NewPostgresSnapshotStoreWithPool(pool DBPool, tableName string) *PostgresSnapshotStore {
	if tableName == "" {
		tableName = "snapshots"
	}
	return &PostgresSnapshotStore{
		pool:      pool,
		tableName: tableName,
	}
}

// InitSchema creates the necessary table if it doesn't exist
func (s *PostgresSnapshotStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			board TEXT NOT NULL,
			entries JSONB NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL,
			version INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%s_board ON %s (board);
	`, s.tableName, s.tableName, s.tableName)

	_, err := s.pool.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (s *PostgresSnapshotStore) Close() {
	s.pool.Close()
}

// Save stores a snapshot
func (s *PostgresSnapshotStore) Save(ctx context.Context, snapshot *store.Snapshot) error {
	entriesJSON, err := json.Marshal(snapshot.Entries)
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, board, entries, timestamp, version)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			board = EXCLUDED.board,
			entries = EXCLUDED.entries,
			timestamp = EXCLUDED.timestamp,
			version = EXCLUDED.version
	`, s.tableName)

	_, err = s.pool.Exec(ctx, query,
		snapshot.ID,
		snapshot.Board,
		entriesJSON,
		snapshot.Timestamp,
		snapshot.Version,
	)

	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// Load retrieves a snapshot by ID
func (s *PostgresSnapshotStore) Load(ctx context.Context, snapshotID string) (*store.Snapshot, error) {
	query := fmt.Sprintf(`
		SELECT id, board, entries, timestamp, version
		FROM %s
		WHERE id = $1
	`, s.tableName)

	var snap store.Snapshot
	var entriesJSON []byte

	err := s.pool.QueryRow(ctx, query, snapshotID).Scan(
		&snap.ID,
		&snap.Board,
		&entriesJSON,
		&snap.Timestamp,
		&snap.Version,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("snapshot not found: %s", snapshotID)
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	if err := json.Unmarshal(entriesJSON, &snap.Entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entries: %w", err)
	}

	return &snap, nil
}

// List returns all snapshots of a given board
func (s *PostgresSnapshotStore) List(ctx context.Context, board string) ([]*store.Snapshot, error) {
	query := fmt.Sprintf(`
		SELECT id, board, entries, timestamp, version
		FROM %s
		WHERE board = $1
		ORDER BY version ASC
	`, s.tableName)

	rows, err := s.pool.Query(ctx, query, board)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*store.Snapshot
	for rows.Next() {
		var snap store.Snapshot
		var entriesJSON []byte

		err := rows.Scan(
			&snap.ID,
			&snap.Board,
			&entriesJSON,
			&snap.Timestamp,
			&snap.Version,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}

		if err := json.Unmarshal(entriesJSON, &snap.Entries); err != nil {
			return nil, fmt.Errorf("failed to unmarshal entries: %w", err)
		}

		snapshots = append(snapshots, &snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", err)
	}

	return snapshots, nil
}

// Delete removes a snapshot
func (s *PostgresSnapshotStore) Delete(ctx context.Context, snapshotID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.tableName)
	_, err := s.pool.Exec(ctx, query, snapshotID)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Clear removes all snapshots of a board
func (s *PostgresSnapshotStore) Clear(ctx context.Context, board string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE board = $1", s.tableName)
	_, err := s.pool.Exec(ctx, query, board)
	if err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}
	return nil
}
