package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]TableDefinition)
	registryMu sync.RWMutex
)

// Register adds a table definition to the registry.
// Panics if a table with the same key is already registered or the
// definition is invalid.
func Register(def TableDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("table already registered: %s", def.Info.Key))
	}
	if err := ValidateDefinition(def); err != nil {
		panic(err.Error())
	}

	registry[def.Info.Key] = normalizeDefinition(def)
}

// Replace swaps the registered definitions for defs in one step. Used when
// the catalog is reloaded; tables missing from defs are removed.
func Replace(defs []TableDefinition) error {
	next := make(map[string]TableDefinition, len(defs))
	for _, def := range defs {
		if err := ValidateDefinition(def); err != nil {
			return err
		}
		if _, exists := next[def.Info.Key]; exists {
			return fmt.Errorf("%w: duplicate table %q", ErrInvalidDefinition, def.Info.Key)
		}
		next[def.Info.Key] = normalizeDefinition(def)
	}

	registryMu.Lock()
	registry = next
	registryMu.Unlock()
	return nil
}

// Get returns a table definition by key.
// Returns false if not found.
func Get(key string) (TableDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// All returns all registered table definitions.
// Sorted by group then by key for consistent ordering.
func All() []TableDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]TableDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Info.Group != result[j].Info.Group {
			return result[i].Info.Group < result[j].Info.Group
		}
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// ByGroup returns all table definitions for a specific group.
// Sorted by key for consistent ordering.
func ByGroup(group string) []TableDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var result []TableDefinition
	for _, def := range registry {
		if def.Info.Group == group {
			result = append(result, def)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// Groups returns all unique group names.
// Sorted alphabetically.
func Groups() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	seen := make(map[string]bool)
	for _, def := range registry {
		seen[def.Info.Group] = true
	}

	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}

	sort.Strings(groups)
	return groups
}

// TableCount returns the number of registered tables.
func TableCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered tables.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]TableDefinition)
}

// normalizeDefinition fills defaults the rest of the package relies on.
func normalizeDefinition(def TableDefinition) TableDefinition {
	if def.Info.Label == "" {
		def.Info.Label = def.Info.Key
	}
	cols := make([]ColumnSpec, len(def.Columns))
	for i, c := range def.Columns {
		if c.Format == "" {
			c.Format = FormatText
		}
		if c.Title == "" {
			c.Title = c.Key
		}
		cols[i] = c
	}
	def.Columns = cols
	return def
}
