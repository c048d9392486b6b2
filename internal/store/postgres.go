package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/hrconsole/internal/core"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS column_preferences (
	owner       TEXT        NOT NULL,
	table_key   TEXT        NOT NULL,
	active_keys JSONB       NOT NULL,
	column_order JSONB      NOT NULL,
	widths      JSONB       NOT NULL DEFAULT '{}'::jsonb,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (owner, table_key)
)`

// PostgresStore persists preferences in PostgreSQL, one row per owner and
// table with the lists stored as JSONB.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore returns a store on pool. Call EnsureSchema once before use.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the preferences table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("create column_preferences: %w", err)
	}
	return nil
}

// Load returns the saved preference or core.ErrPreferenceNotFound.
func (s *PostgresStore) Load(ctx context.Context, owner, table string) (core.Preference, error) {
	var (
		active, order, widths []byte
		updated               time.Time
	)
	err := s.pool.QueryRow(ctx,
		`SELECT active_keys, column_order, widths, updated_at
		   FROM column_preferences
		  WHERE owner = $1 AND table_key = $2`,
		owner, table,
	).Scan(&active, &order, &widths, &updated)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Preference{}, core.ErrPreferenceNotFound
	}
	if err != nil {
		return core.Preference{}, fmt.Errorf("query preference: %w", err)
	}
	return decodePreference(active, order, widths, updated)
}

// Save upserts p.
func (s *PostgresStore) Save(ctx context.Context, owner, table string, p core.Preference) error {
	active, order, widths, err := encodePreference(p)
	if err != nil {
		return err
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO column_preferences (owner, table_key, active_keys, column_order, widths, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (owner, table_key) DO UPDATE
		    SET active_keys = EXCLUDED.active_keys,
		        column_order = EXCLUDED.column_order,
		        widths = EXCLUDED.widths,
		        updated_at = EXCLUDED.updated_at`,
		owner, table, active, order, widths, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert preference: %w", err)
	}
	return nil
}

// Reset deletes the saved preference.
func (s *PostgresStore) Reset(ctx context.Context, owner, table string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM column_preferences WHERE owner = $1 AND table_key = $2`,
		owner, table,
	)
	if err != nil {
		return fmt.Errorf("delete preference: %w", err)
	}
	return nil
}

// encodePreference marshals the list columns shared by the SQL stores.
func encodePreference(p core.Preference) (active, order, widths []byte, err error) {
	if active, err = json.Marshal(nonNil(p.ActiveKeys)); err != nil {
		return nil, nil, nil, fmt.Errorf("encode active keys: %w", err)
	}
	if order, err = json.Marshal(nonNil(p.Order)); err != nil {
		return nil, nil, nil, fmt.Errorf("encode order: %w", err)
	}
	w := p.Widths
	if w == nil {
		w = map[string]int{}
	}
	if widths, err = json.Marshal(w); err != nil {
		return nil, nil, nil, fmt.Errorf("encode widths: %w", err)
	}
	return active, order, widths, nil
}

func decodePreference(active, order, widths []byte, updated time.Time) (core.Preference, error) {
	p := core.Preference{UpdatedAt: updated, Widths: map[string]int{}}
	if err := json.Unmarshal(active, &p.ActiveKeys); err != nil {
		return core.Preference{}, fmt.Errorf("decode active keys: %w", err)
	}
	if err := json.Unmarshal(order, &p.Order); err != nil {
		return core.Preference{}, fmt.Errorf("decode order: %w", err)
	}
	if len(widths) > 0 {
		if err := json.Unmarshal(widths, &p.Widths); err != nil {
			return core.Preference{}, fmt.Errorf("decode widths: %w", err)
		}
	}
	return p, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
