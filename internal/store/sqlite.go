package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"

const schemaTree = `
CREATE TABLE IF NOT EXISTS tree (
    path TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

const (
	upsertValueSQL = `
		INSERT INTO tree (path, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			value=excluded.value,
			updated_at=excluded.updated_at
	`

	selectValueSQL = `SELECT value FROM tree WHERE path=?`

	selectSubtreeSQL = `SELECT path, value FROM tree WHERE path=? OR path LIKE ? ESCAPE '\'`
)

// SQLite is the durable Store implementation backing cloud mode. Writes are
// last-write-wins at row granularity; subscriptions are in-process and fire on
// any write at or below the subscribed path.
type SQLite struct {
	db  *sql.DB
	hub *hub
}

// OpenSQLite opens/creates the database file and ensures the schema exists.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings for SQLite
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", strings.TrimSuffix(pragma, ";"), err)
		}
	}

	if _, err := db.Exec(schemaTree); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply tree schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return NewSQLite(db), nil
}

// NewSQLite wraps an already opened database. Used by tests with sqlmock.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db, hub: newHub()}
}

func (s *SQLite) Get(ctx context.Context, path string) (string, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, selectValueSQL, path).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return raw, true, nil
}

func (s *SQLite) Set(ctx context.Context, path, raw string) error {
	if _, err := s.db.ExecContext(ctx, upsertValueSQL, path, raw, time.Now().UTC()); err != nil {
		return err
	}
	s.hub.notify(path, func(root string) (Snapshot, error) {
		return s.List(ctx, root)
	})
	return nil
}

func (s *SQLite) List(ctx context.Context, prefix string) (Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, selectSubtreeSQL, prefix, likePrefix(prefix))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snap := make(Snapshot)
	for rows.Next() {
		var path, raw string
		if err := rows.Scan(&path, &raw); err != nil {
			return nil, err
		}
		snap[relative(prefix, path)] = raw
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *SQLite) Subscribe(path string, l Listener) (func(), error) {
	snap, err := s.List(context.Background(), path)
	if err != nil {
		return nil, err
	}
	dispose := s.hub.add(path, l)
	// Initial snapshot fires synchronously, matching push-on-subscribe stores.
	if l.OnChange != nil {
		l.OnChange(snap)
	}
	return dispose, nil
}

func (s *SQLite) Close() error {
	s.hub.cancelAll(ErrClosed)
	return s.db.Close()
}

// likePrefix builds the LIKE pattern for strict descendants of prefix.
func likePrefix(prefix string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	return escaped + "/%"
}

// relative strips the listed prefix from a row path.
func relative(prefix, path string) string {
	if path == prefix {
		return ""
	}
	return strings.TrimPrefix(path, prefix+"/")
}
