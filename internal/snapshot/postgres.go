package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresKV implements KV for PostgreSQL. Values must be valid JSON.
type PostgresKV struct {
	db *sqlx.DB
}

var _ KV = (*PostgresKV)(nil)

// NewPostgresKV connects to dataSourceName and creates the table if needed.
func NewPostgresKV(dataSourceName string) (*PostgresKV, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS mise_state (
		key TEXT PRIMARY KEY,
		value JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create mise_state table: %w", err)
	}

	return &PostgresKV{db: db}, nil
}

// Get retrieves the value stored under key.
func (s *PostgresKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM mise_state WHERE key = $1", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

// Put upserts every entry in one transaction.
func (s *PostgresKV) Put(ctx context.Context, entries map[string][]byte) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for key, value := range entries {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO mise_state (key, value, updated_at) VALUES ($1, $2, now()) ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = now()",
			key,
			string(value),
		)
		if err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit state: %w", err)
	}
	return nil
}

func (s *PostgresKV) Close() error { return s.db.Close() }
