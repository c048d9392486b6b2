package store

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/hrconsole/internal/config"
	"github.com/JonMunkholm/hrconsole/internal/core"
)

// DemoSeed seeds the generated demo rows.
const DemoSeed = 20240101

// Backend bundles the stores selected by the configuration.
type Backend struct {
	Prefs core.PreferenceStore
	Rows  core.RowSource

	pool   *pgxpool.Pool
	sqlite *SQLiteStore
}

// Open builds the preference store and row source named by cfg. A
// PostgreSQL pool is created only when either of them needs one.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Backend, error) {
	b := &Backend{}
	driver := strings.ToLower(cfg.Driver)
	rows := strings.ToLower(cfg.Rows)

	if driver == config.DriverPostgres || rows == config.DriverPostgres {
		pool, err := openPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		b.pool = pool
	}

	switch driver {
	case config.DriverPostgres:
		ps := NewPostgresStore(b.pool)
		if err := ps.EnsureSchema(ctx); err != nil {
			b.Close()
			return nil, err
		}
		b.Prefs = ps
	case config.DriverSQLite:
		ss, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.sqlite = ss
		b.Prefs = ss
		slog.Info("opened sqlite preference store", "path", cfg.SQLitePath)
	default:
		b.Prefs = NewMemoryStore()
	}

	if rows == config.DriverPostgres {
		b.Rows = NewPostgresRows(b.pool)
	} else {
		b.Rows = NewMemoryRows(DemoRows(DemoSeed))
	}

	slog.Info("storage ready", "prefs", driver, "rows", rows)
	return b, nil
}

// Ping checks every database the backend holds.
func (b *Backend) Ping(ctx context.Context) error {
	if b.pool != nil {
		if err := b.pool.Ping(ctx); err != nil {
			return fmt.Errorf("ping postgres: %w", err)
		}
	}
	if b.sqlite != nil {
		if err := b.sqlite.Ping(ctx); err != nil {
			return fmt.Errorf("ping sqlite: %w", err)
		}
	}
	return nil
}

// Close releases the database handles.
func (b *Backend) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
	if b.sqlite != nil {
		if err := b.sqlite.Close(); err != nil {
			slog.Warn("close sqlite", "error", err)
		}
	}
}

func openPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if u, err := url.Parse(cfg.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}
	return pool, nil
}
