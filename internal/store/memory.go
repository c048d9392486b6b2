package store

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/JonMunkholm/hrconsole/internal/core"
)

// MemoryStore keeps preferences in process memory. Saved values are copied
// on the way in and out, so callers never share slices with the store.
type MemoryStore struct {
	mu    sync.RWMutex
	prefs map[prefKey]core.Preference
}

type prefKey struct {
	owner string
	table string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{prefs: make(map[prefKey]core.Preference)}
}

// Load returns the saved preference or core.ErrPreferenceNotFound.
func (s *MemoryStore) Load(ctx context.Context, owner, table string) (core.Preference, error) {
	if err := ctx.Err(); err != nil {
		return core.Preference{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.prefs[prefKey{owner, table}]
	if !ok {
		return core.Preference{}, core.ErrPreferenceNotFound
	}
	return copyPreference(p), nil
}

// Save stores p, replacing any previous value.
func (s *MemoryStore) Save(ctx context.Context, owner, table string, p core.Preference) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs[prefKey{owner, table}] = copyPreference(p)
	return nil
}

// Reset removes the saved preference. Resetting nothing is not an error.
func (s *MemoryStore) Reset(ctx context.Context, owner, table string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.prefs, prefKey{owner, table})
	return nil
}

// Len returns the number of saved preferences.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.prefs)
}

func copyPreference(p core.Preference) core.Preference {
	return core.Preference{
		ActiveKeys: slices.Clone(p.ActiveKeys),
		Order:      slices.Clone(p.Order),
		Widths:     maps.Clone(p.Widths),
		UpdatedAt:  p.UpdatedAt,
	}
}
