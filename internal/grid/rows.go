package grid

import (
	"strconv"
	"time"

	"github.com/a-h/templ"
)

const (
	DefaultAnimationDuration = 400 * time.Millisecond
	DefaultStaggerDelay      = 50 * time.Millisecond

	// defaultSkeletonRows is used when neither an explicit skeleton length
	// nor a page size is known.
	defaultSkeletonRows = 10
)

// RowOptions controls one RowRenderer pass.
type RowOptions struct {
	IsSuccess    bool
	SkeletonRows int // Explicit placeholder row count, 0 to derive
	PageSize     int // Placeholder fallback when SkeletonRows is 0
	RowKey       func(Row) string
}

// CellView is the render model of one body cell.
type CellView struct {
	Key      string
	Content  templ.Component
	MaxWidth int // Shared with the header so both clip alike
	Skeleton bool
	Delay    time.Duration
	Duration time.Duration
}

// RowView is the render model of one body row.
type RowView struct {
	Key      string
	Index    int
	Skeleton bool
	Cells    []CellView
}

// RowRenderer switches between placeholder rows and real, staggered rows.
// It never changes row identity, order or content.
type RowRenderer struct {
	AnimationDuration time.Duration
	StaggerDelay      time.Duration
}

// ShowSkeleton reports whether placeholder rows are rendered.
func ShowSkeleton(isSuccess bool) bool { return !isSuccess }

// SkeletonCount returns the number of placeholder rows for opts.
func SkeletonCount(opts RowOptions) int {
	switch {
	case opts.SkeletonRows > 0:
		return opts.SkeletonRows
	case opts.PageSize > 0:
		return opts.PageSize
	default:
		return defaultSkeletonRows
	}
}

// Rows renders data through cols. While opts.IsSuccess is false the data is
// ignored and SkeletonCount placeholder rows are produced instead.
func (r RowRenderer) Rows(cols []Column, widths *WidthMap, data []Row, opts RowOptions) []RowView {
	if widths == nil {
		widths = NewWidthMap(nil)
	}
	if ShowSkeleton(opts.IsSuccess) {
		n := SkeletonCount(opts)
		rows := make([]RowView, n)
		for i := range rows {
			cells := make([]CellView, len(cols))
			for j, c := range cols {
				cells[j] = CellView{Key: c.Key, Content: Placeholder, MaxWidth: widths.Width(c), Skeleton: true}
			}
			rows[i] = RowView{Key: "skeleton-" + strconv.Itoa(i), Index: i, Skeleton: true, Cells: cells}
		}
		return rows
	}

	duration := r.AnimationDuration
	if duration <= 0 {
		duration = DefaultAnimationDuration
	}
	stagger := r.StaggerDelay
	if stagger < 0 {
		stagger = 0
	}

	rows := make([]RowView, len(data))
	for i, row := range data {
		cells := make([]CellView, len(cols))
		for j, c := range cols {
			cells[j] = CellView{
				Key:      c.Key,
				Content:  c.Cell(row, i),
				MaxWidth: widths.Width(c),
				Delay:    time.Duration(i) * stagger,
				Duration: duration,
			}
		}
		rows[i] = RowView{Key: rowKey(opts.RowKey, row, i), Index: i, Cells: cells}
	}
	return rows
}

// rowKey resolves the identity of a row, falling back to its position.
func rowKey(fn func(Row) string, row Row, i int) string {
	if fn != nil {
		if k := fn(row); k != "" {
			return k
		}
	}
	return "row-" + strconv.Itoa(i)
}
