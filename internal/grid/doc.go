// Package grid implements the column configuration and rendering engine used
// by every data table in the console.
//
// The engine is a set of small, synchronous state machines that sit between a
// caller-owned column descriptor set and the rendered table:
//
//   - [Reorder] moves one key of an order list onto another (drag and drop).
//   - [Controller] is the flat settings panel: per-column checkboxes, a
//     search-scoped tri-state "select all" and drag reordering.
//   - [GroupedController] is the tabbed variant that splits columns into a
//     general panel and named attribute groups while committing one shared
//     order and one merged visibility list.
//   - [WidthMap] and [HeaderCell] implement resizable headers.
//   - [RowRenderer] produces skeleton placeholder rows while data is loading
//     and staggered real rows once it is ready.
//   - [Host] composes all of the above for one table.
//
// # Order and Visibility
//
// The order list is always a permutation of the descriptor keys; the
// visibility list is always a sub-sequence of the order list. Every operation
// normalizes its inputs instead of failing: unknown keys are dropped, missing
// keys are appended, no-op drags are ignored.
//
// # Ownership
//
// Nothing in this package persists state or performs I/O. Every committed
// change leaves through a single [ChangeFunc] callback carrying the new
// order and visibility together; the caller decides where to store it and
// feeds it back through [Host.Sync]. Values in this package are not safe for
// concurrent use: create one [Host] per request or event loop.
package grid
