package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"github.com/JonMunkholm/hrconsole/internal/core"
	"github.com/JonMunkholm/hrconsole/internal/grid"
)

// MemoryRows serves rows from in-memory tables.
type MemoryRows struct {
	mu     sync.RWMutex
	tables map[string][]grid.Row
}

// NewMemoryRows returns a row source over tables, keyed by table key.
func NewMemoryRows(tables map[string][]grid.Row) *MemoryRows {
	if tables == nil {
		tables = make(map[string][]grid.Row)
	}
	return &MemoryRows{tables: tables}
}

// Set replaces the rows of one table.
func (m *MemoryRows) Set(table string, rows []grid.Row) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[table] = rows
}

// Page returns one page of the rows of table matching req.Search.
// Unknown tables have no rows.
func (m *MemoryRows) Page(ctx context.Context, table string, req core.PageRequest) (*core.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	all := m.tables[table]
	m.mu.RUnlock()

	matched := filterRows(all, req.Search, req.SearchFields)
	if req.SortField != "" {
		matched = slices.Clone(matched)
		slices.SortStableFunc(matched, func(a, b grid.Row) int {
			c := compareValues(a[req.SortField], b[req.SortField])
			if req.SortDesc {
				return -c
			}
			return c
		})
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	total := int64(len(matched))
	page, totalPages, offset := paginate(total, req.Page, pageSize)
	end := min(offset+pageSize, len(matched))

	rows := make([]grid.Row, 0, end-offset)
	for _, r := range matched[offset:end] {
		rows = append(rows, project(r, req.Fields))
	}

	return &core.Page{
		Rows:       rows,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Search:     req.Search,
	}, nil
}

// filterRows keeps the rows where any of fields contains query, compared
// with Unicode case folding. An empty field list searches every field.
func filterRows(rows []grid.Row, query string, fields []string) []grid.Row {
	query = strings.TrimSpace(query)
	if query == "" {
		return rows
	}
	fold := cases.Fold()
	needle := fold.String(query)

	var out []grid.Row
	for _, r := range rows {
		if rowMatches(r, needle, fields, fold) {
			out = append(out, r)
		}
	}
	return out
}

func rowMatches(r grid.Row, needle string, fields []string, fold cases.Caser) bool {
	if len(fields) == 0 {
		for _, v := range r {
			if strings.Contains(fold.String(valueString(v)), needle) {
				return true
			}
		}
		return false
	}
	for _, f := range fields {
		if strings.Contains(fold.String(valueString(r[f])), needle) {
			return true
		}
	}
	return false
}

// project copies the listed fields of r. No fields copies the whole row.
func project(r grid.Row, fields []string) grid.Row {
	out := make(grid.Row, len(r))
	if len(fields) == 0 {
		for k, v := range r {
			out[k] = v
		}
		return out
	}
	for _, f := range fields {
		if v, ok := r[f]; ok {
			out[f] = v
		}
	}
	return out
}

func valueString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.Format(time.DateOnly)
	default:
		return fmt.Sprint(t)
	}
}

// compareValues orders nil first, then numbers, times and strings by value.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	switch x := a.(type) {
	case int:
		if y, ok := b.(int); ok {
			return cmp.Compare(x, y)
		}
	case float64:
		if y, ok := b.(float64); ok {
			return cmp.Compare(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	}
	return strings.Compare(valueString(a), valueString(b))
}
