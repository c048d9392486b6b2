// Package core provides the business logic of the HR console tables.
// This package has no HTTP dependencies and can be used by any frontend.
package core

import (
	"context"
	"time"

	"github.com/JonMunkholm/hrconsole/internal/grid"
)

// Format selects how a column's cells are rendered.
type Format string

const (
	FormatText   Format = "text"
	FormatDate   Format = "date"
	FormatMoney  Format = "money"
	FormatEnum   Format = "enum"
	FormatStatus Format = "status"
	FormatBool   Format = "bool"
	FormatAction Format = "action"
)

// validFormats lists every supported Format.
var validFormats = map[Format]bool{
	FormatText:   true,
	FormatDate:   true,
	FormatMoney:  true,
	FormatEnum:   true,
	FormatStatus: true,
	FormatBool:   true,
	FormatAction: true,
}

// ColumnSpec is the catalog entry for one column.
type ColumnSpec struct {
	Key        string            `yaml:"key"`
	Title      string            `yaml:"title"`
	Field      string            `yaml:"field"`     // Row field, defaults to Key
	Format     Format            `yaml:"format"`    // Defaults to text
	Width      int               `yaml:"width"`     // 0 disables resizing
	MinWidth   int               `yaml:"min_width"` // Raised to 40 by the grid
	MaxWidth   int               `yaml:"max_width"`
	Pinned     string            `yaml:"pinned"` // "left", "right" or empty
	Group      string            `yaml:"group"`  // Attribute group tag
	Searchable bool              `yaml:"searchable"`
	Values     map[string]string `yaml:"values"` // Enum value -> label
}

// FieldName returns the row field the column reads from.
func (c ColumnSpec) FieldName() string {
	if c.Field != "" {
		return c.Field
	}
	return c.Key
}

// TableInfo contains display information about a table.
type TableInfo struct {
	Key         string `yaml:"key"`   // Unique identifier: "employees"
	Group       string `yaml:"group"` // Navigation group: "People", "Contracts"
	Label       string `yaml:"label"` // Display name: "Employees"
	Description string `yaml:"description"`
	RowKey      string `yaml:"row_key"` // Field holding the row identity
}

// TableDefinition contains everything needed to render a table.
type TableDefinition struct {
	Info    TableInfo    `yaml:",inline"`
	Columns []ColumnSpec `yaml:"columns"`

	// Fixed lists columns that cannot be hidden.
	Fixed []string `yaml:"fixed"`

	// DefaultKeys is the visibility list used before a user saves one.
	// Empty means every column.
	DefaultKeys []string `yaml:"default_keys"`

	// AttributeKeys enables the grouped settings panel for these columns.
	AttributeKeys []string          `yaml:"attribute_keys"`
	GroupTitles   map[string]string `yaml:"group_titles"`

	// ActionKey names the trailing edit-mode column.
	ActionKey string `yaml:"action_key"`

	// Grouped selects the tabbed settings panel when the request does not
	// ask for a variant. Ignored without AttributeKeys.
	Grouped bool `yaml:"grouped"`
}

// Keys returns the column keys in catalog order.
func (d TableDefinition) Keys() []string {
	keys := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		keys[i] = c.Key
	}
	return keys
}

// Column returns the spec for key.
func (d TableDefinition) Column(key string) (ColumnSpec, bool) {
	for _, c := range d.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

// SearchFields returns the row fields used by free-text row search.
func (d TableDefinition) SearchFields() []string {
	var fields []string
	for _, c := range d.Columns {
		if c.Searchable {
			fields = append(fields, c.FieldName())
		}
	}
	return fields
}

// Fields returns every row field the table reads, in catalog order.
func (d TableDefinition) Fields() []string {
	fields := make([]string, 0, len(d.Columns))
	seen := make(map[string]bool, len(d.Columns))
	for _, c := range d.Columns {
		if c.Format == FormatAction {
			continue
		}
		f := c.FieldName()
		if !seen[f] {
			seen[f] = true
			fields = append(fields, f)
		}
	}
	if d.Info.RowKey != "" && !seen[d.Info.RowKey] {
		fields = append(fields, d.Info.RowKey)
	}
	return fields
}

// Preference is the persisted column configuration of one owner and table.
type Preference struct {
	ActiveKeys []string       `json:"active_keys"`
	Order      []string       `json:"order"`
	Widths     map[string]int `json:"widths"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// PreferenceStore persists column preferences. Load returns
// ErrPreferenceNotFound when nothing was saved yet.
type PreferenceStore interface {
	Load(ctx context.Context, owner, table string) (Preference, error)
	Save(ctx context.Context, owner, table string, p Preference) error
	Reset(ctx context.Context, owner, table string) error
}

// PageRequest asks a RowSource for one page of rows.
type PageRequest struct {
	Page         int
	PageSize     int
	Search       string
	Fields       []string // Fields to return
	SearchFields []string // Fields matched by Search
	SortField    string
	SortDesc     bool
}

// Page is one page of table rows.
type Page struct {
	Rows       []grid.Row
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
	Search     string
}

// RowSource supplies paged row data for a table.
type RowSource interface {
	Page(ctx context.Context, table string, req PageRequest) (*Page, error)
}

// CellRenderer maps a column spec to the function rendering its cells.
type CellRenderer func(spec ColumnSpec) grid.RenderFunc
