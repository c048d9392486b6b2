package grid

import (
	"strings"

	"golang.org/x/text/cases"
)

// matchesSearch reports whether the column's label contains query, ignoring
// case. Untitled columns are matched on their key. An empty query matches
// everything.
func matchesSearch(query string, c Column) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return true
	}
	// Casers carry state and are cheap to build, so one per call.
	fold := cases.Fold()
	q = fold.String(q)
	title := c.Title
	if title == "" {
		title = c.Key
	}
	return strings.Contains(fold.String(title), q)
}
