package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/hrconsole/internal/config"
	"github.com/JonMunkholm/hrconsole/internal/core"
)

// testPreferenceStore runs the behavior every PreferenceStore shares.
func testPreferenceStore(t *testing.T, s core.PreferenceStore) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Load(ctx, "alice", "employees")
	require.ErrorIs(t, err, core.ErrPreferenceNotFound)

	saved := core.Preference{
		ActiveKeys: []string{"name", "email", "action"},
		Order:      []string{"name", "email", "phone", "action"},
		Widths:     map[string]int{"email": 260},
		UpdatedAt:  time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC),
	}
	require.NoError(t, s.Save(ctx, "alice", "employees", saved))

	got, err := s.Load(ctx, "alice", "employees")
	require.NoError(t, err)
	assert.Equal(t, saved.ActiveKeys, got.ActiveKeys)
	assert.Equal(t, saved.Order, got.Order)
	assert.Equal(t, saved.Widths, got.Widths)
	assert.True(t, saved.UpdatedAt.Equal(got.UpdatedAt), "UpdatedAt = %v, want %v", got.UpdatedAt, saved.UpdatedAt)

	// Owners and tables are isolated.
	_, err = s.Load(ctx, "bob", "employees")
	assert.ErrorIs(t, err, core.ErrPreferenceNotFound)
	_, err = s.Load(ctx, "alice", "contracts")
	assert.ErrorIs(t, err, core.ErrPreferenceNotFound)

	// Saving again overwrites.
	saved.ActiveKeys = []string{"name"}
	saved.Widths = nil
	require.NoError(t, s.Save(ctx, "alice", "employees", saved))
	got, err = s.Load(ctx, "alice", "employees")
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, got.ActiveKeys)
	assert.Empty(t, got.Widths)

	require.NoError(t, s.Reset(ctx, "alice", "employees"))
	_, err = s.Load(ctx, "alice", "employees")
	assert.ErrorIs(t, err, core.ErrPreferenceNotFound)

	assert.NoError(t, s.Reset(ctx, "alice", "employees"), "resetting nothing")
}

func TestMemoryStore(t *testing.T) {
	testPreferenceStore(t, NewMemoryStore())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	p := core.Preference{ActiveKeys: []string{"a", "b"}, Widths: map[string]int{"a": 100}}
	require.NoError(t, s.Save(ctx, "u", "t", p))

	p.ActiveKeys[0] = "z"
	p.Widths["a"] = 1

	got, err := s.Load(ctx, "u", "t")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got.ActiveKeys)
	assert.Equal(t, 100, got.Widths["a"])

	got.Order = append(got.Order, "x")
	again, _ := s.Load(ctx, "u", "t")
	assert.Empty(t, again.Order)
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Save(ctx, "u", "t", core.Preference{}), context.Canceled)
	_, err := s.Load(ctx, "u", "t")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	testPreferenceStore(t, s)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "u", "leave", core.Preference{ActiveKeys: []string{"employee"}}))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Load(ctx, "u", "leave")
	require.NoError(t, err)
	assert.Equal(t, []string{"employee"}, got.ActiveKeys)
	assert.False(t, got.UpdatedAt.IsZero(), "UpdatedAt defaulted on save")
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	b, err := Open(ctx, config.DatabaseConfig{Driver: config.DriverMemory, Rows: config.RowsDemo})
	require.NoError(t, err)
	defer b.Close()
	assert.IsType(t, &MemoryStore{}, b.Prefs)
	assert.IsType(t, &MemoryRows{}, b.Rows)
	assert.NoError(t, b.Ping(ctx))

	b2, err := Open(ctx, config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		Rows:       config.RowsDemo,
		SQLitePath: filepath.Join(t.TempDir(), "hr.db"),
	})
	require.NoError(t, err)
	defer b2.Close()
	assert.IsType(t, &SQLiteStore{}, b2.Prefs)
	assert.NoError(t, b2.Ping(ctx))
}
