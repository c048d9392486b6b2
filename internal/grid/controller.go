package grid

// ChangeFunc receives every committed (order, visibility) pair. Both slices
// are fresh copies owned by the receiver.
type ChangeFunc func(order, visible []string)

// SelectState is the tri-state value of a "select all" checkbox.
type SelectState struct {
	Checked       bool
	Indeterminate bool
}

// Option is one row of a settings checkbox list.
type Option struct {
	Key     string
	Title   string
	Checked bool
}

// ControllerConfig seeds a Controller or GroupedController.
type ControllerConfig struct {
	Columns   []Column
	Order     []string // Full order; normalized against Columns
	Visible   []string // Visible keys; normalized against Order
	Fixed     []string // Keys that cannot be hidden
	ActionKey string   // Trailing edit-mode column, never offered as an option
	OnChange  ChangeFunc
}

// Controller is the flat column settings panel: one checkbox list, one
// search box, one "select all" and drag reordering. It keeps the committed
// order and visibility and reports every change through OnChange.
type Controller struct {
	columns   map[string]Column
	order     []string
	visible   []string
	fixed     map[string]bool
	actionKey string
	search    string
	onChange  ChangeFunc
}

// NewController builds a flat controller. Fixed columns and the action key are
// always part of the visibility list, and the action key stays at the tail of
// both lists.
func NewController(cfg ControllerConfig) *Controller {
	c := &Controller{
		columns:   byKey(cfg.Columns),
		fixed:     setOf(cfg.Fixed),
		actionKey: cfg.ActionKey,
		onChange:  cfg.OnChange,
	}
	c.order = PinLast(NormalizeOrder(cfg.Order, Keys(cfg.Columns)), c.actionKey)
	c.visible = Subsequence(c.order, append(clone(cfg.Visible), c.alwaysVisible()...))
	return c
}

// Order returns a copy of the committed order list.
func (c *Controller) Order() []string { return clone(c.order) }

// Visible returns a copy of the committed visibility list.
func (c *Controller) Visible() []string { return clone(c.visible) }

// Search returns the current search text.
func (c *Controller) Search() string { return c.search }

// SetSearch narrows the checkbox list and the scope of ToggleAll. It does not
// change the committed state.
func (c *Controller) SetSearch(text string) { c.search = text }

// Toggle shows or hides one selectable column. The order list is untouched.
func (c *Controller) Toggle(key string, checked bool) {
	if !c.selectable(key) {
		return
	}
	in := indexOf(c.visible, key) >= 0
	if in == checked {
		return
	}
	if checked {
		c.visible = Subsequence(c.order, append(clone(c.visible), key))
	} else {
		c.visible = without(c.visible, map[string]bool{key: true})
	}
	c.commit()
}

// ToggleAll shows or hides every column that passes the current search.
// Columns outside the search keep their membership.
func (c *Controller) ToggleAll(checked bool) {
	filtered := c.Filtered()
	if len(filtered) == 0 {
		return
	}
	var next []string
	if checked {
		next = Subsequence(c.order, append(clone(c.visible), filtered...))
	} else {
		next = without(c.visible, setOf(filtered))
	}
	if equalKeys(next, c.visible) {
		return
	}
	c.visible = next
	c.commit()
}

// SelectAll reports the "select all" checkbox state for the filtered keys.
func (c *Controller) SelectAll() SelectState {
	return selectState(c.Filtered(), setOf(c.visible))
}

// DragEnd applies a drop to the full order list. Visibility membership is
// preserved; only positions follow the new order.
func (c *Controller) DragEnd(ev DropEvent) {
	next := PinLast(Reorder(c.order, ev), c.actionKey)
	if equalKeys(next, c.order) {
		return
	}
	c.order = next
	c.visible = Subsequence(next, c.visible)
	c.commit()
}

// Filtered returns the selectable keys matching the search, in order.
func (c *Controller) Filtered() []string {
	var out []string
	for _, k := range c.order {
		if c.selectable(k) && matchesSearch(c.search, c.columns[k]) {
			out = append(out, k)
		}
	}
	return out
}

// Options returns the checkbox list for the current search. Fixed columns
// and the action column are not listed.
func (c *Controller) Options() []Option {
	in := setOf(c.visible)
	keys := c.Filtered()
	out := make([]Option, 0, len(keys))
	for _, k := range keys {
		out = append(out, Option{Key: k, Title: titleOf(c.columns[k]), Checked: in[k]})
	}
	return out
}

// Sortable returns every column in order for the drag list, including fixed
// columns, which stay reorderable.
func (c *Controller) Sortable() []Option {
	in := setOf(c.visible)
	out := make([]Option, 0, len(c.order))
	for _, k := range c.order {
		if k == c.actionKey {
			continue
		}
		out = append(out, Option{Key: k, Title: titleOf(c.columns[k]), Checked: in[k]})
	}
	return out
}

func (c *Controller) selectable(key string) bool {
	if _, ok := c.columns[key]; !ok {
		return false
	}
	return !c.fixed[key] && key != c.actionKey
}

func (c *Controller) alwaysVisible() []string {
	keys := make([]string, 0, len(c.fixed)+1)
	for k := range c.fixed {
		keys = append(keys, k)
	}
	if c.actionKey != "" {
		keys = append(keys, c.actionKey)
	}
	return keys
}

func (c *Controller) commit() {
	if c.onChange != nil {
		c.onChange(clone(c.order), clone(c.visible))
	}
}

func selectState(filtered []string, visible map[string]bool) SelectState {
	n := 0
	for _, k := range filtered {
		if visible[k] {
			n++
		}
	}
	return SelectState{
		Checked:       len(filtered) > 0 && n == len(filtered),
		Indeterminate: n > 0 && n < len(filtered),
	}
}

func titleOf(c Column) string {
	if c.Title != "" {
		return c.Title
	}
	return c.Key
}
