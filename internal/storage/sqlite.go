// sqlite.go implements Storage on a single SQLite file.
//
// Both areas live in one table keyed by (area, key), so a multi-key Set is a
// single transaction and the sync quota check sees a consistent view of the
// area it is about to modify.
//
// Design: WAL mode with a busy timeout, as the HTTP server, the file watcher
// and one-shot CLI commands may open the same file at once.

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLite implements Storage on an SQLite database.
type SQLite struct {
	db    *sql.DB
	quota Quota
}

var _ Storage = (*SQLite)(nil)

// Option configures an SQLite store.
type Option func(*SQLite)

// WithQuota sets the sync area quota. The default is DefaultQuota().
func WithQuota(q Quota) Option {
	return func(s *SQLite) { s.quota = q }
}

// Open opens the database at path and creates the schema if needed.
// The caller should call Close on the returned store.
func Open(path string, opts ...Option) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	pragmas := []struct{ stmt, what string }{
		{`PRAGMA journal_mode=WAL`, "setting WAL mode"},
		{`PRAGMA busy_timeout=5000`, "setting busy timeout"},
		{`PRAGMA synchronous=NORMAL`, "setting synchronous mode"},
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p.what, err)
		}
	}

	s := &SQLite{db: db, quota: DefaultQuota()}
	for _, opt := range opts {
		opt(s)
	}
	if err := ExecEmbedded(db, schemas, "sql"); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection.
func (s *SQLite) DB() *sql.DB {
	return s.db
}

// Get implements Storage.
func (s *SQLite) Get(ctx context.Context, area Area, keys ...string) (map[string]json.RawMessage, error) {
	if err := validArea(area); err != nil {
		return nil, err
	}

	q := `SELECT key, value FROM items WHERE area = ?`
	args := []any{string(area)}
	if len(keys) > 0 {
		q += ` AND key IN (` + placeholders(len(keys)) + `)`
		for _, k := range keys {
			args = append(args, k)
		}
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", area, err)
	}
	defer rows.Close()

	out := make(map[string]json.RawMessage)
	for rows.Next() {
		var k string
		var v []byte
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

// Set implements Storage. Sync writes are checked against the quota inside
// the same transaction that applies them.
func (s *SQLite) Set(ctx context.Context, area Area, items map[string]json.RawMessage) error {
	if err := validArea(area); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		if area == AreaSync {
			existing, err := sizes(ctx, tx, area)
			if err != nil {
				return err
			}
			if err := checkQuota(s.quota, existing, items); err != nil {
				return err
			}
		}

		now := time.Now().UnixMilli()
		for k, v := range items {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO items (area, key, value, updated_at) VALUES (?, ?, ?, ?)
				 ON CONFLICT (area, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
				string(area), k, []byte(v), now)
			if err != nil {
				return fmt.Errorf("set %s/%s: %w", area, k, err)
			}
		}
		return nil
	})
}

// Remove implements Storage.
func (s *SQLite) Remove(ctx context.Context, area Area, keys ...string) error {
	if err := validArea(area); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	args := []any{string(area)}
	for _, k := range keys {
		args = append(args, k)
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM items WHERE area = ? AND key IN (`+placeholders(len(keys))+`)`, args...)
	if err != nil {
		return fmt.Errorf("remove %s: %w", area, err)
	}
	return nil
}

// Usage reports item count and byte size of area.
func (s *SQLite) Usage(ctx context.Context, area Area) (Usage, error) {
	if err := validArea(area); err != nil {
		return Usage{}, err
	}
	var u Usage
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(length(key) + length(value)), 0) FROM items WHERE area = ?`,
		string(area)).Scan(&u.Items, &u.Bytes)
	if err != nil {
		return Usage{}, fmt.Errorf("usage %s: %w", area, err)
	}
	return u, nil
}

// Tx executes fn within a transaction, committing when fn returns nil and
// rolling back otherwise.
func (s *SQLite) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func sizes(ctx context.Context, tx *sql.Tx, area Area) (map[string]int, error) {
	rows, err := tx.QueryContext(ctx, `SELECT key, length(key) + length(value) FROM items WHERE area = ?`, string(area))
	if err != nil {
		return nil, fmt.Errorf("read sizes: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var k string
		var n int
		if err := rows.Scan(&k, &n); err != nil {
			return nil, fmt.Errorf("scan size: %w", err)
		}
		out[k] = n
	}
	return out, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
