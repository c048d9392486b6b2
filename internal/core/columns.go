package core

import "github.com/JonMunkholm/hrconsole/internal/grid"

// BuildColumns converts the catalog columns of def into grid descriptors.
// cells may be nil, in which case every column renders plain text.
func BuildColumns(def TableDefinition, cells CellRenderer) []grid.Column {
	cols := make([]grid.Column, len(def.Columns))
	for i, spec := range def.Columns {
		col := grid.Column{
			Key:      spec.Key,
			Title:    spec.Title,
			Width:    spec.Width,
			MinWidth: spec.MinWidth,
			MaxWidth: spec.MaxWidth,
			Pinned:   grid.ParsePin(spec.Pinned),
			Group:    spec.Group,
			Field:    spec.FieldName(),
		}
		if cells != nil {
			col.Render = cells(spec)
		}
		cols[i] = col
	}
	return cols
}

// DefaultPreference is the configuration used before an owner saves one.
func DefaultPreference(def TableDefinition) Preference {
	keys := def.DefaultKeys
	if len(keys) == 0 {
		keys = def.Keys()
	}
	active := make([]string, len(keys))
	copy(active, keys)
	return Preference{
		ActiveKeys: active,
		Order:      def.Keys(),
		Widths:     map[string]int{},
	}
}
