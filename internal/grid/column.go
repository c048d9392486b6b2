package grid

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Pin marks a column as stuck to one edge of the table.
type Pin int

const (
	PinNone Pin = iota
	PinLeft
	PinRight
)

// String returns the CSS-friendly name of the pin.
func (p Pin) String() string {
	switch p {
	case PinLeft:
		return "left"
	case PinRight:
		return "right"
	default:
		return ""
	}
}

// ParsePin converts "left" or "right" into a Pin. Anything else is PinNone.
func ParsePin(s string) Pin {
	switch s {
	case "left":
		return PinLeft
	case "right":
		return PinRight
	default:
		return PinNone
	}
}

// Row is one record of table data keyed by field name.
type Row map[string]any

// RenderFunc renders a single cell. value is row[Column.Field].
type RenderFunc func(value any, row Row, index int) templ.Component

// Column describes one table column. Columns are owned by the caller and are
// never modified by this package.
type Column struct {
	Key      string // Unique, stable identifier
	Title    string // Header label
	Width    int    // Default width in pixels, 0 if the column is not resizable
	MinWidth int    // Lower resize bound, raised to at least 40
	MaxWidth int    // Upper resize bound, 0 for unbounded
	Pinned   Pin
	Group    string // Attribute group tag, empty for general columns
	Field    string // Row field holding the cell value, defaults to Key
	Render   RenderFunc
}

// FieldName returns the row field the column reads from.
func (c Column) FieldName() string {
	if c.Field != "" {
		return c.Field
	}
	return c.Key
}

// Cell renders the column's cell for row. Columns without a renderer print
// the value as escaped text.
func (c Column) Cell(row Row, index int) templ.Component {
	value := row[c.FieldName()]
	if c.Render != nil {
		return c.Render(value, row, index)
	}
	return Text(value)
}

// layoutEqual reports whether two descriptors share the same width defaults.
// A WidthMap entry survives a descriptor change only when this holds.
func (c Column) layoutEqual(o Column) bool {
	return c.Key == o.Key && c.Width == o.Width && c.MinWidth == o.MinWidth && c.MaxWidth == o.MaxWidth
}

// Keys returns the descriptor keys in descriptor order. Empty and repeated
// keys are skipped so the result can serve as an order list.
func Keys(cols []Column) []string {
	keys := make([]string, 0, len(cols))
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if c.Key == "" || seen[c.Key] {
			continue
		}
		seen[c.Key] = true
		keys = append(keys, c.Key)
	}
	return keys
}

// byKey indexes columns by key. The first descriptor wins on duplicates.
func byKey(cols []Column) map[string]Column {
	m := make(map[string]Column, len(cols))
	for _, c := range cols {
		if _, ok := m[c.Key]; ok || c.Key == "" {
			continue
		}
		m[c.Key] = c
	}
	return m
}

// Text renders v as escaped text. nil renders nothing.
func Text(v any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if v == nil {
			return nil
		}
		_, err := io.WriteString(w, templ.EscapeString(fmt.Sprint(v)))
		return err
	})
}

// Placeholder is the generic skeleton cell.
var Placeholder templ.Component = templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, `<span class="skeleton-bar" aria-hidden="true"></span>`)
	return err
})
