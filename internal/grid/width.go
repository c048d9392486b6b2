package grid

const (
	// MinResizableWidth is the smallest width a resizable column can take.
	MinResizableWidth = 40

	// FallbackWidth is used for columns with neither an override nor a
	// default width.
	FallbackWidth = 50
)

// WidthMap holds per-column width overrides produced by header resizing.
// Its lifecycle is independent of order and visibility.
type WidthMap struct {
	widths map[string]int
}

// NewWidthMap returns a map seeded with a copy of initial.
func NewWidthMap(initial map[string]int) *WidthMap {
	m := &WidthMap{widths: make(map[string]int, len(initial))}
	for k, w := range initial {
		if w > 0 {
			m.widths[k] = w
		}
	}
	return m
}

// Get returns the override for key, if any.
func (m *WidthMap) Get(key string) (int, bool) {
	w, ok := m.widths[key]
	return w, ok
}

// Width returns the displayed width of col: the override, else the default,
// else FallbackWidth.
func (m *WidthMap) Width(col Column) int {
	if w, ok := m.widths[col.Key]; ok {
		return w
	}
	if col.Width > 0 {
		return col.Width
	}
	return FallbackWidth
}

// Resize stores a new width for col, clamped to its bounds. Columns without a
// default width and inert handles are not resizable. It returns the stored
// width and whether anything was written.
func (m *WidthMap) Resize(col Column, width int, inert bool) (int, bool) {
	if col.Width <= 0 || inert {
		return 0, false
	}
	lo, hi := Bounds(col)
	if width < lo {
		width = lo
	}
	if hi > 0 && width > hi {
		width = hi
	}
	m.widths[col.Key] = width
	return width, true
}

// Reconcile drops overrides whose column disappeared or whose descriptor
// width defaults changed between prev and next. With a nil prev only missing
// columns are dropped.
func (m *WidthMap) Reconcile(prev, next []Column) {
	before := byKey(prev)
	after := byKey(next)
	for k := range m.widths {
		n, ok := after[k]
		if !ok {
			delete(m.widths, k)
			continue
		}
		if p, had := before[k]; prev != nil && (!had || !p.layoutEqual(n)) {
			delete(m.widths, k)
		}
	}
}

// Snapshot returns a copy of the overrides.
func (m *WidthMap) Snapshot() map[string]int {
	out := make(map[string]int, len(m.widths))
	for k, w := range m.widths {
		out[k] = w
	}
	return out
}

// Bounds returns the resize bounds of col. hi is 0 when unbounded.
func Bounds(col Column) (lo, hi int) {
	lo = max(col.MinWidth, MinResizableWidth)
	if col.MaxWidth > 0 {
		hi = max(col.MaxWidth, lo)
	}
	return lo, hi
}

// HeaderSpec is the render model of one header cell.
type HeaderSpec struct {
	Key       string
	Title     string
	Width     int
	MinWidth  int
	MaxWidth  int
	Pinned    Pin
	Resizable bool // Wrapped in a resize handle container
	Inert     bool // Handle is drawn but swallows input
}

// HeaderCell builds the header model of col. last marks the rightmost
// displayed column, whose handle is inert.
func HeaderCell(col Column, widths *WidthMap, last bool) HeaderSpec {
	h := HeaderSpec{
		Key:    col.Key,
		Title:  titleOf(col),
		Width:  widths.Width(col),
		Pinned: col.Pinned,
	}
	if col.Width <= 0 {
		return h
	}
	h.Resizable = true
	h.MinWidth, h.MaxWidth = Bounds(col)
	h.Inert = last || col.Pinned == PinRight
	return h
}
