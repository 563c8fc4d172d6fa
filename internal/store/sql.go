package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lox/wildpoker/internal/game"
	_ "modernc.org/sqlite"
)

// Dialect selects SQL driver and placeholder syntax.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS game_states (
	id TEXT PRIMARY KEY,
	document TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// SQLStore keeps game documents in a game_states table.
type SQLStore struct {
	dialect Dialect
	db      *sql.DB
}

// OpenSQL connects and creates the table if needed. For sqlite dsn is a
// file path; for postgres it is a connection string.
func OpenSQL(ctx context.Context, dialect Dialect, dsn string) (*SQLStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("%s store requires a dsn", dialect)
	}

	var driverName string
	switch dialect {
	case DialectSQLite:
		driverName = "sqlite"
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
		dsn = filepath.Clean(dsn) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	case DialectPostgres:
		driverName = "pgx"
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect, err)
	}
	if dialect == DialectSQLite {
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s database: %w", dialect, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create game_states: %w", err)
	}
	return &SQLStore{dialect: dialect, db: db}, nil
}

func (s *SQLStore) bind(pos int) string {
	if s.dialect == DialectPostgres {
		return fmt.Sprintf("$%d", pos)
	}
	return "?"
}

// Load reads the document for id.
func (s *SQLStore) Load(ctx context.Context, id string) (*game.State, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	q := "SELECT document FROM game_states WHERE id = " + s.bind(1)

	var doc string
	if err := s.db.QueryRowContext(ctx, q, id).Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}
	var state game.State
	if err := json.Unmarshal([]byte(doc), &state); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", id, err)
	}
	return &state, nil
}

// Save upserts the document for id.
func (s *SQLStore) Save(ctx context.Context, id string, state *game.State) error {
	if err := checkID(id); err != nil {
		return err
	}
	doc, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", id, err)
	}
	q := fmt.Sprintf(
		`INSERT INTO game_states (id, document, updated_at) VALUES (%s, %s, %s)
		 ON CONFLICT (id) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		s.bind(1), s.bind(2), s.bind(3),
	)
	if _, err := s.db.ExecContext(ctx, q, id, string(doc), time.Now().UTC()); err != nil {
		return fmt.Errorf("save game %s: %w", id, err)
	}
	return nil
}

// Delete removes the document for id.
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM game_states WHERE id = "+s.bind(1), id); err != nil {
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
