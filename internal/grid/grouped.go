package grid

// GeneralGroup is the panel holding every selectable column that is not an
// attribute column.
const GeneralGroup = "general"

// defaultAttributeGroup holds attribute columns that carry no group tag.
const defaultAttributeGroup = "attributes"

// GroupedConfig seeds a GroupedController.
type GroupedConfig struct {
	ControllerConfig

	// AttributeKeys lists the columns managed by attribute panels. Each one
	// lands in the panel named by its Column.Group.
	AttributeKeys []string

	// Titles maps panel IDs to display titles.
	Titles map[string]string

	// Hidden lists panels whose column list starts collapsed.
	Hidden []string
}

// PanelView is the render model of one settings panel.
type PanelView struct {
	ID        string
	Title     string
	Show      bool
	Search    string
	SelectAll SelectState
	Options   []Option
	Checked   []string
}

type panel struct {
	id     string
	title  string
	keys   []string // members in descriptor order
	search string
	show   bool
}

// GroupedController is the tabbed settings variant. Columns are partitioned
// into the general panel and one panel per attribute group. Each panel keeps
// its own search, select-all and checked list, while the controller commits
// one shared order and one merged visibility list.
//
// The action key is kept at the tail of the order and the visibility list.
type GroupedController struct {
	columns   map[string]Column
	order     []string
	visible   []string
	fixed     map[string]bool
	actionKey string
	panels    []*panel
	panelOf   map[string]*panel
	onChange  ChangeFunc
}

// NewGroupedController partitions cfg.Columns and normalizes the seeded state.
func NewGroupedController(cfg GroupedConfig) *GroupedController {
	g := &GroupedController{
		columns:   byKey(cfg.Columns),
		fixed:     setOf(cfg.Fixed),
		actionKey: cfg.ActionKey,
		panelOf:   make(map[string]*panel),
		onChange:  cfg.OnChange,
	}

	hidden := setOf(cfg.Hidden)
	attr := setOf(cfg.AttributeKeys)
	general := &panel{id: GeneralGroup, title: panelTitle(cfg.Titles, GeneralGroup), show: !hidden[GeneralGroup]}
	g.panels = append(g.panels, general)
	byID := map[string]*panel{GeneralGroup: general}

	keys := Keys(cfg.Columns)
	for _, k := range keys {
		if g.fixed[k] || k == g.actionKey {
			continue
		}
		target := general
		if attr[k] {
			id := g.columns[k].Group
			if id == "" || id == GeneralGroup {
				id = defaultAttributeGroup
			}
			p, ok := byID[id]
			if !ok {
				p = &panel{id: id, title: panelTitle(cfg.Titles, id), show: !hidden[id]}
				byID[id] = p
				g.panels = append(g.panels, p)
			}
			target = p
		}
		target.keys = append(target.keys, k)
		g.panelOf[k] = target
	}

	g.order = PinLast(NormalizeOrder(cfg.Order, keys), g.actionKey)
	g.visible = g.merge(setOf(cfg.Visible))
	return g
}

// Order returns a copy of the committed order list.
func (g *GroupedController) Order() []string { return clone(g.order) }

// Visible returns a copy of the committed visibility list.
func (g *GroupedController) Visible() []string { return clone(g.visible) }

// Groups returns the panel IDs, general first.
func (g *GroupedController) Groups() []string {
	ids := make([]string, len(g.panels))
	for i, p := range g.panels {
		ids[i] = p.id
	}
	return ids
}

// Panels returns the render model of every panel.
func (g *GroupedController) Panels() []PanelView {
	in := setOf(g.visible)
	views := make([]PanelView, 0, len(g.panels))
	for _, p := range g.panels {
		filtered := g.filtered(p)
		opts := make([]Option, 0, len(filtered))
		for _, k := range filtered {
			opts = append(opts, Option{Key: k, Title: titleOf(g.columns[k]), Checked: in[k]})
		}
		views = append(views, PanelView{
			ID:        p.id,
			Title:     p.title,
			Show:      p.show,
			Search:    p.search,
			SelectAll: selectState(filtered, in),
			Options:   opts,
			Checked:   g.checked(p, in),
		})
	}
	return views
}

// Panel returns the render model of one panel.
func (g *GroupedController) Panel(id string) (PanelView, bool) {
	for _, v := range g.Panels() {
		if v.ID == id {
			return v, true
		}
	}
	return PanelView{}, false
}

// SetSearch sets the search text of one panel.
func (g *GroupedController) SetSearch(group, text string) {
	if p := g.panel(group); p != nil {
		p.search = text
	}
}

// SetShow opens or collapses one panel's column list. Visibility of the
// panel's columns in the table is not affected.
func (g *GroupedController) SetShow(group string, show bool) {
	if p := g.panel(group); p != nil {
		p.show = show
	}
}

// Toggle shows or hides key, which must belong to group.
func (g *GroupedController) Toggle(group, key string, checked bool) {
	p := g.panel(group)
	if p == nil || g.panelOf[key] != p {
		return
	}
	in := setOf(g.visible)
	if in[key] == checked {
		return
	}
	in[key] = checked
	g.visible = g.merge(in)
	g.commit()
}

// ToggleAll shows or hides every key of group passing the group's search.
func (g *GroupedController) ToggleAll(group string, checked bool) {
	p := g.panel(group)
	if p == nil {
		return
	}
	in := setOf(g.visible)
	changed := false
	for _, k := range g.filtered(p) {
		if in[k] != checked {
			in[k] = checked
			changed = true
		}
	}
	if !changed {
		return
	}
	g.visible = g.merge(in)
	g.commit()
}

// SelectAll reports the tri-state checkbox of one panel.
func (g *GroupedController) SelectAll(group string) SelectState {
	p := g.panel(group)
	if p == nil {
		return SelectState{}
	}
	return selectState(g.filtered(p), setOf(g.visible))
}

// DragEnd reorders the shared order list, then forces the action key back to
// the tail.
func (g *GroupedController) DragEnd(ev DropEvent) {
	next := PinLast(Reorder(g.order, ev), g.actionKey)
	if equalKeys(next, g.order) {
		return
	}
	g.order = next
	g.visible = g.merge(setOf(g.visible))
	g.commit()
}

// merge rebuilds the committed visibility list from the fixed columns, the
// checked keys of every panel and the action key. The result follows the
// order list so that it stays a sub-sequence of it, with the action key last.
func (g *GroupedController) merge(in map[string]bool) []string {
	keys := make([]string, 0, len(g.order))
	for k := range g.fixed {
		if k != g.actionKey {
			keys = append(keys, k)
		}
	}
	for _, p := range g.panels {
		keys = append(keys, g.checked(p, in)...)
	}
	visible := Subsequence(g.order, keys)
	if _, ok := g.columns[g.actionKey]; ok {
		visible = append(visible, g.actionKey)
	}
	return visible
}

// checked returns the members of p present in in, following the order list.
func (g *GroupedController) checked(p *panel, in map[string]bool) []string {
	var out []string
	for _, k := range g.order {
		if g.panelOf[k] == p && in[k] {
			out = append(out, k)
		}
	}
	return out
}

func (g *GroupedController) filtered(p *panel) []string {
	var out []string
	for _, k := range g.order {
		if g.panelOf[k] == p && matchesSearch(p.search, g.columns[k]) {
			out = append(out, k)
		}
	}
	return out
}

func (g *GroupedController) panel(id string) *panel {
	for _, p := range g.panels {
		if p.id == id {
			return p
		}
	}
	return nil
}

func (g *GroupedController) commit() {
	if g.onChange != nil {
		g.onChange(clone(g.order), clone(g.visible))
	}
}

func panelTitle(titles map[string]string, id string) string {
	if t, ok := titles[id]; ok && t != "" {
		return t
	}
	if id == GeneralGroup {
		return "General"
	}
	return id
}
