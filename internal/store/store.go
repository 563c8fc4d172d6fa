// Package store persists game documents by session id.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/lox/wildpoker/internal/config"
	"github.com/lox/wildpoker/internal/game"
)

// ErrNotFound is returned by Load when no document exists for an id.
var ErrNotFound = errors.New("game not found")

// Store loads and saves whole game documents. Implementations must be safe
// for concurrent use across different ids.
type Store interface {
	Load(ctx context.Context, id string) (*game.State, error)
	Save(ctx context.Context, id string, state *game.State) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// Open creates the store selected by cfg.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverFile, "":
		return NewFileStore(cfg.Path)
	case config.DriverSQLite:
		return OpenSQL(ctx, DialectSQLite, cfg.Path)
	case config.DriverPostgres:
		return OpenSQL(ctx, DialectPostgres, cfg.DSN)
	case config.DriverRedis:
		return OpenRedis(ctx, cfg.Addr, cfg.DB)
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

func checkID(id string) error {
	if id == "" {
		return errors.New("game id is required")
	}
	return nil
}
