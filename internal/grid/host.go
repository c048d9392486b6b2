package grid

import (
	"sort"
	"time"
)

// DefaultActionKey is the key of the trailing edit-mode column.
const DefaultActionKey = "action"

// Mode is the caller-driven view/edit switch.
type Mode int

const (
	ModeView Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "view"
}

// Phase is the caller-driven loading state.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
)

func (p Phase) String() string {
	if p == PhaseReady {
		return "ready"
	}
	return "loading"
}

// State is the host's position in the {view, edit} x {loading, ready} grid.
// Both axes only move when the caller passes new props.
type State struct {
	Mode  Mode
	Phase Phase
}

// Pagination is forwarded untouched to the pager; PageSize also sizes the
// skeleton.
type Pagination struct {
	Page       int
	PageSize   int
	Total      int64
	TotalPages int
}

// Props is everything a caller hands to a Host.
type Props struct {
	Columns []Column
	Rows    []Row
	RowKey  func(Row) string

	// ActiveKeys is the committed visibility list. Its relative order also
	// drives the column order.
	ActiveKeys []string

	// Order optionally carries the full committed order so that hidden
	// columns keep their positions across reloads.
	Order []string

	OnActiveKeysChange ChangeFunc

	FixedColumns  []string
	AttributeKeys []string
	GroupedMode   bool
	GroupTitles   map[string]string
	HiddenPanels  []string

	ActionKey string // Defaults to DefaultActionKey
	EditMode  bool
	IsSuccess bool

	SkeletonRows      int
	AnimationDuration time.Duration // Defaults to DefaultAnimationDuration
	StaggerDelay      time.Duration // Defaults to DefaultStaggerDelay
	Pagination        Pagination
}

// Settings is the render model of the column settings panel.
type Settings struct {
	Grouped   bool
	Search    string
	SelectAll SelectState
	Options   []Option    // Flat variant
	Sortable  []Option    // Drag list, fixed columns included
	Panels    []PanelView // Grouped variant
}

// View is the complete render model of a table.
type View struct {
	State      State
	Headers    []HeaderSpec
	Rows       []RowView
	Settings   Settings
	Pagination Pagination
	Empty      bool
}

// Host composes the settings controller, the width map and the row renderer
// for one table. It treats its props as the source of truth: every Sync
// discards local state that was not committed back by the caller.
type Host struct {
	props   Props
	columns []Column
	byKey   map[string]Column
	order   []string
	visible []string
	widths  *WidthMap

	flat    *Controller
	grouped *GroupedController
}

// NewHost builds a host seeded with persisted width overrides.
func NewHost(props Props, widths map[string]int) *Host {
	h := &Host{widths: NewWidthMap(widths)}
	h.Sync(props)
	return h
}

// Sync reconciles the host with new props. Columns are re-sorted by the
// relative order of ActiveKeys (then Order, then descriptor order), active
// keys without a descriptor are dropped, and width overrides whose column
// changed identity are reset.
func (h *Host) Sync(props Props) {
	if props.ActionKey == "" {
		props.ActionKey = DefaultActionKey
	}
	if props.AnimationDuration <= 0 {
		props.AnimationDuration = DefaultAnimationDuration
	}
	if props.StaggerDelay <= 0 {
		props.StaggerDelay = DefaultStaggerDelay
	}

	prev := h.columns
	h.props = props
	h.columns = sortColumns(props.Columns, props.ActiveKeys, props.Order)
	h.byKey = byKey(h.columns)
	h.order = Keys(h.columns)
	h.visible = Subsequence(h.order, props.ActiveKeys)
	h.widths.Reconcile(prev, h.columns)

	cfg := ControllerConfig{
		Columns:   h.columns,
		Order:     h.order,
		Visible:   h.visible,
		Fixed:     props.FixedColumns,
		ActionKey: props.ActionKey,
		OnChange:  h.commit,
	}
	h.flat, h.grouped = nil, nil
	if h.Grouped() {
		h.grouped = NewGroupedController(GroupedConfig{
			ControllerConfig: cfg,
			AttributeKeys:    props.AttributeKeys,
			Titles:           props.GroupTitles,
			Hidden:           props.HiddenPanels,
		})
		h.order, h.visible = h.grouped.Order(), h.grouped.Visible()
	} else {
		h.flat = NewController(cfg)
		h.order, h.visible = h.flat.Order(), h.flat.Visible()
	}
}

// sortColumns orders descriptors by their rank in active, then in order.
// Keys in neither keep descriptor order at the end.
func sortColumns(cols []Column, active, order []string) []Column {
	rank := make(map[string]int, len(active)+len(order))
	for _, k := range active {
		if _, ok := rank[k]; !ok {
			rank[k] = len(rank)
		}
	}
	for _, k := range order {
		if _, ok := rank[k]; !ok {
			rank[k] = len(rank)
		}
	}
	known := byKey(cols)
	out := make([]Column, 0, len(known))
	for _, k := range Keys(cols) {
		out = append(out, known[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, iok := rank[out[i].Key]
		rj, jok := rank[out[j].Key]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return false
		}
	})
	return out
}

// commit records a controller change locally and forwards it to the caller.
func (h *Host) commit(order, visible []string) {
	h.order, h.visible = order, visible
	if h.props.OnActiveKeysChange != nil {
		h.props.OnActiveKeysChange(clone(order), clone(visible))
	}
}

// Grouped reports whether the tabbed settings variant is active.
func (h *Host) Grouped() bool {
	return h.props.GroupedMode && len(h.props.AttributeKeys) > 0
}

// Controller returns the flat controller, nil in grouped mode.
func (h *Host) Controller() *Controller { return h.flat }

// GroupedController returns the grouped controller, nil in flat mode.
func (h *Host) GroupedController() *GroupedController { return h.grouped }

// Widths returns the width overrides.
func (h *Host) Widths() *WidthMap { return h.widths }

// Order returns the current order list.
func (h *Host) Order() []string { return clone(h.order) }

// ActiveKeys returns the current visibility list.
func (h *Host) ActiveKeys() []string { return clone(h.visible) }

// State returns the host's mode and loading phase.
func (h *Host) State() State {
	s := State{Mode: ModeView, Phase: PhaseLoading}
	if h.props.EditMode {
		s.Mode = ModeEdit
	}
	if h.props.IsSuccess {
		s.Phase = PhaseReady
	}
	return s
}

// Display returns the columns to render: the order list restricted to the
// visible keys. The action column is dropped in view mode and placed last in
// edit mode.
func (h *Host) Display() []Column {
	action := h.props.ActionKey
	out := make([]Column, 0, len(h.visible)+1)
	for _, k := range h.visible {
		if k == action {
			continue
		}
		if c, ok := h.byKey[k]; ok {
			out = append(out, c)
		}
	}
	if h.props.EditMode {
		if c, ok := h.byKey[action]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Resize applies a header drag to key. Resizing the last displayed column,
// a right-pinned column or a column without default width does nothing.
func (h *Host) Resize(key string, width int) (int, bool) {
	display := h.Display()
	for i, c := range display {
		if c.Key != key {
			continue
		}
		inert := i == len(display)-1 || c.Pinned == PinRight
		return h.widths.Resize(c, width, inert)
	}
	return 0, false
}

// Render builds the complete view model.
func (h *Host) Render() View {
	display := h.Display()
	headers := make([]HeaderSpec, len(display))
	for i, c := range display {
		headers[i] = HeaderCell(c, h.widths, i == len(display)-1)
	}

	renderer := RowRenderer{
		AnimationDuration: h.props.AnimationDuration,
		StaggerDelay:      h.props.StaggerDelay,
	}
	rows := renderer.Rows(display, h.widths, h.props.Rows, RowOptions{
		IsSuccess:    h.props.IsSuccess,
		SkeletonRows: h.props.SkeletonRows,
		PageSize:     h.props.Pagination.PageSize,
		RowKey:       h.props.RowKey,
	})

	return View{
		State:      h.State(),
		Headers:    headers,
		Rows:       rows,
		Settings:   h.settings(),
		Pagination: h.props.Pagination,
		Empty:      len(display) == 0 || len(rows) == 0,
	}
}

func (h *Host) settings() Settings {
	if h.grouped != nil {
		return Settings{
			Grouped:  true,
			Sortable: sortable(h.order, h.visible, h.byKey, h.props.ActionKey),
			Panels:   h.grouped.Panels(),
		}
	}
	if h.flat == nil {
		return Settings{}
	}
	return Settings{
		Search:    h.flat.Search(),
		SelectAll: h.flat.SelectAll(),
		Options:   h.flat.Options(),
		Sortable:  h.flat.Sortable(),
	}
}

func sortable(order, visible []string, cols map[string]Column, action string) []Option {
	in := setOf(visible)
	out := make([]Option, 0, len(order))
	for _, k := range order {
		if k == action {
			continue
		}
		out = append(out, Option{Key: k, Title: titleOf(cols[k]), Checked: in[k]})
	}
	return out
}
