package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/JonMunkholm/hrconsole/internal/core"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS column_preferences (
	owner        TEXT NOT NULL,
	table_key    TEXT NOT NULL,
	active_keys  TEXT NOT NULL,
	column_order TEXT NOT NULL,
	widths       TEXT NOT NULL DEFAULT '{}',
	updated_at   TEXT NOT NULL,
	PRIMARY KEY (owner, table_key)
)`

// SQLiteStore persists preferences in an embedded SQLite database for
// single-node installs. Lists are stored as JSON text.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
// Use ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite has a single writer; one connection also keeps a :memory:
	// database alive for the life of the store.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create column_preferences: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Load returns the saved preference or core.ErrPreferenceNotFound.
func (s *SQLiteStore) Load(ctx context.Context, owner, table string) (core.Preference, error) {
	var active, order, widths, updated string
	err := s.db.QueryRowContext(ctx,
		`SELECT active_keys, column_order, widths, updated_at
		   FROM column_preferences
		  WHERE owner = ? AND table_key = ?`,
		owner, table,
	).Scan(&active, &order, &widths, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Preference{}, core.ErrPreferenceNotFound
	}
	if err != nil {
		return core.Preference{}, fmt.Errorf("query preference: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, updated)
	if err != nil {
		return core.Preference{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return decodePreference([]byte(active), []byte(order), []byte(widths), ts)
}

// Save upserts p.
func (s *SQLiteStore) Save(ctx context.Context, owner, table string, p core.Preference) error {
	active, order, widths, err := encodePreference(p)
	if err != nil {
		return err
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO column_preferences (owner, table_key, active_keys, column_order, widths, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (owner, table_key) DO UPDATE
		    SET active_keys = excluded.active_keys,
		        column_order = excluded.column_order,
		        widths = excluded.widths,
		        updated_at = excluded.updated_at`,
		owner, table, string(active), string(order), string(widths), p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert preference: %w", err)
	}
	return nil
}

// Reset deletes the saved preference.
func (s *SQLiteStore) Reset(ctx context.Context, owner, table string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM column_preferences WHERE owner = ? AND table_key = ?`,
		owner, table,
	)
	if err != nil {
		return fmt.Errorf("delete preference: %w", err)
	}
	return nil
}
