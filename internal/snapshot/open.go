package snapshot

import (
	"fmt"

	"mise/internal/config"
)

// Open builds the repository selected by cfg.Store.
func Open(cfg config.Config) (*Repository, error) {
	switch cfg.Store {
	case config.StorePostgres:
		kv, err := NewPostgresKV(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("error creating postgres store: %w", err)
		}
		return NewRepository(kv, JSONCodec{}), nil
	case config.StoreSQLite:
		kv, err := NewSQLiteKV(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("error creating sqlite store: %w", err)
		}
		return NewRepository(kv, MsgpackCodec{}), nil
	case config.StoreMemory:
		return NewRepository(NewMemoryKV(), JSONCodec{}), nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}
