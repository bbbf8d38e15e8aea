package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"santa-admin-bot/internal/infra/metrics"
)

// Store owns the single database file behind every repository.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database, enables WAL and foreign keys, and
// applies the schema. If path is empty it defaults to "bot_database.db".
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = "bot_database.db"
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	// The sqlite3 driver serializes writes; more open connections just
	// fight over the write lock.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// DB exposes the raw handle.
func (s *Store) DB() *sql.DB { return s.db }

// conn times every statement into the DB latency histogram. Method names
// mirror *sql.DB so the repositories read as plain database code.
type conn struct{ db *sql.DB }

func (s *Store) conn() conn { return conn{db: s.db} }

func (c conn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := c.db.ExecContext(ctx, query, args...)
	metrics.ObserveDBQuery("exec", time.Since(start))
	return res, err
}

func (c conn) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := c.db.QueryContext(ctx, query, args...)
	metrics.ObserveDBQuery("query", time.Since(start))
	return rows, err
}

func (c conn) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := c.db.QueryRowContext(ctx, query, args...)
	metrics.ObserveDBQuery("query_row", time.Since(start))
	return row
}

func (c conn) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return c.db.BeginTx(ctx, opts)
}

// ClearOnlineModes drops every volatile online-mode marker. Runs at startup
// and on /restart.
func (s *Store) ClearOnlineModes(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM online_modes`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const timeLayout = time.RFC3339

func fmtTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
