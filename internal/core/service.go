package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/JonMunkholm/hrconsole/internal/grid"
)

// SaveTimeout is the maximum duration for one preference write.
var SaveTimeout = 5 * time.Second

// ServiceConfig tunes how tables are rendered.
type ServiceConfig struct {
	PageSize          int
	SkeletonRows      int
	AnimationDuration time.Duration
	StaggerDelay      time.Duration

	// MaxConcurrentSaves and SaveWait size the preference write limiter.
	MaxConcurrentSaves int
	SaveWait           time.Duration
}

// Service provides the table operations used by the web layer and the CLI.
// It owns the caller side of the grid: it loads the committed preference,
// hands it to a grid.Host as props and persists what the host reports back.
type Service struct {
	prefs PreferenceStore
	rows  RowSource
	cells CellRenderer
	cfg   ServiceConfig
	saves *SaveLimiter
}

// NewService creates a new Service. rows may be nil when only column
// configuration is needed; cells may be nil for plain text cells.
func NewService(prefs PreferenceStore, rows RowSource, cells CellRenderer, cfg ServiceConfig) *Service {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	return &Service{
		prefs: prefs,
		rows:  rows,
		cells: cells,
		cfg:   cfg,
		saves: NewSaveLimiter(cfg.MaxConcurrentSaves, cfg.SaveWait),
	}
}

// Saves exposes the write limiter for shutdown draining and health checks.
func (s *Service) Saves() *SaveLimiter { return s.saves }

// ListTables returns information about all registered tables.
func (s *Service) ListTables() []TableInfo {
	defs := All()
	infos := make([]TableInfo, len(defs))
	for i, def := range defs {
		infos[i] = def.Info
	}
	return infos
}

// ListTablesByGroup returns tables organized by group.
func (s *Service) ListTablesByGroup() map[string][]TableInfo {
	result := make(map[string][]TableInfo)
	for _, group := range Groups() {
		for _, def := range ByGroup(group) {
			result[group] = append(result[group], def.Info)
		}
	}
	return result
}

// ViewRequest describes how a table is rendered for one request.
type ViewRequest struct {
	EditMode bool
	Grouped  bool

	// WithRows fetches a page of rows and switches the host to its ready
	// phase. Without it the table renders skeleton rows.
	WithRows bool
	Page     int
	PageSize int
	Search   string // Row search

	// ColumnSearch filters the settings panel. In grouped mode it applies to
	// the panel named by ColumnGroup.
	ColumnSearch string
	ColumnGroup  string

	HiddenPanels []string
}

// TableView is a rendered table together with the state it was built from.
type TableView struct {
	Definition TableDefinition
	Preference Preference
	Request    ViewRequest
	View       grid.View
}

// TableView renders table key for owner.
func (s *Service) TableView(ctx context.Context, owner, key string, req ViewRequest) (*TableView, error) {
	def, ok := Get(key)
	if !ok {
		return nil, fmt.Errorf("view %q: %w", key, ErrTableNotFound)
	}

	pref := s.preference(ctx, owner, def)
	props, err := s.props(ctx, def, pref, req)
	if err != nil {
		return nil, err
	}

	host := grid.NewHost(props, pref.Widths)
	applySearch(host, req)

	return &TableView{Definition: def, Preference: pref, Request: req, View: host.Render()}, nil
}

// CommandKind names one settings operation.
type CommandKind string

const (
	CommandToggle    CommandKind = "toggle"
	CommandToggleAll CommandKind = "toggle-all"
	CommandReorder   CommandKind = "reorder"
	CommandResize    CommandKind = "resize"
	CommandPanel     CommandKind = "panel"
	CommandSearch    CommandKind = "search"
)

// ParseCommandKind validates a command name taken from a URL.
func ParseCommandKind(s string) (CommandKind, error) {
	switch k := CommandKind(s); k {
	case CommandToggle, CommandToggleAll, CommandReorder, CommandResize, CommandPanel, CommandSearch:
		return k, nil
	default:
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidCommand, s)
	}
}

// ColumnCommand is one settings panel or header interaction.
type ColumnCommand struct {
	Kind    CommandKind
	Group   string // Panel of a grouped toggle, toggle-all, panel or search
	Key     string // Column of a toggle or resize
	Checked bool   // Target state of a toggle, toggle-all or panel
	Search  string // Panel search the command runs under
	Source  string // Dragged column of a reorder
	Target  string // Drop target of a reorder
	Width   int    // Requested width of a resize

	// View is how the table is rendered once the command applied.
	View ViewRequest
}

// ApplyColumns runs cmd against owner's configuration of table key and
// persists the result.
//
// A failed save still returns the updated view along with the error: the
// change is shown for this response but is not committed.
func (s *Service) ApplyColumns(ctx context.Context, owner, key string, cmd ColumnCommand) (*TableView, error) {
	def, ok := Get(key)
	if !ok {
		return nil, fmt.Errorf("apply %s to %q: %w", cmd.Kind, key, ErrTableNotFound)
	}
	if err := checkCommand(def, cmd); err != nil {
		return nil, err
	}

	req := cmd.View
	if cmd.Kind == CommandSearch || cmd.Kind == CommandToggleAll {
		req.ColumnSearch, req.ColumnGroup = cmd.Search, cmd.Group
	}
	if cmd.Kind == CommandPanel {
		req.HiddenPanels = panelState(req.HiddenPanels, cmd.Group, cmd.Checked)
	}

	pref := s.preference(ctx, owner, def)
	props, err := s.props(ctx, def, pref, req)
	if err != nil {
		return nil, err
	}

	changed := false
	props.OnActiveKeysChange = func(order, visible []string) {
		pref.Order, pref.ActiveKeys = order, visible
		changed = true
	}
	host := grid.NewHost(props, pref.Widths)
	applySearch(host, req)

	switch cmd.Kind {
	case CommandToggle:
		if g := host.GroupedController(); g != nil {
			g.Toggle(cmd.Group, cmd.Key, cmd.Checked)
		} else {
			host.Controller().Toggle(cmd.Key, cmd.Checked)
		}
	case CommandToggleAll:
		if g := host.GroupedController(); g != nil {
			g.ToggleAll(cmd.Group, cmd.Checked)
		} else {
			host.Controller().ToggleAll(cmd.Checked)
		}
	case CommandReorder:
		ev := grid.DropEvent{Source: cmd.Source, Target: cmd.Target}
		if g := host.GroupedController(); g != nil {
			g.DragEnd(ev)
		} else {
			host.Controller().DragEnd(ev)
		}
	case CommandResize:
		if _, ok := host.Resize(cmd.Key, cmd.Width); ok {
			pref.Widths = host.Widths().Snapshot()
			changed = true
		}
	}

	var saveErr error
	if changed {
		pref.UpdatedAt = time.Now().UTC()
		saveErr = s.save(ctx, owner, key, pref)

		// Commit back like any caller would, so the view reflects the props.
		props.ActiveKeys, props.Order = pref.ActiveKeys, pref.Order
		host.Sync(props)
		applySearch(host, req)
	}

	view := &TableView{Definition: def, Preference: pref, Request: req, View: host.Render()}
	return view, saveErr
}

// ResetColumns drops owner's saved configuration of table key.
func (s *Service) ResetColumns(ctx context.Context, owner, key string) error {
	if _, ok := Get(key); !ok {
		return fmt.Errorf("reset %q: %w", key, ErrTableNotFound)
	}
	if s.prefs == nil || owner == "" {
		return nil
	}
	if err := s.prefs.Reset(ctx, owner, key); err != nil {
		return fmt.Errorf("reset preference: %w", err)
	}
	slog.Info("column preference reset", "table", key)
	return nil
}

// Preferences returns the configuration owner sees for table key: the saved
// one reconciled with the catalog, or the defaults.
func (s *Service) Preferences(ctx context.Context, owner, key string) (Preference, error) {
	def, ok := Get(key)
	if !ok {
		return Preference{}, fmt.Errorf("preferences %q: %w", key, ErrTableNotFound)
	}
	return s.preference(ctx, owner, def), nil
}

// preference loads the saved configuration, falling back to the defaults.
func (s *Service) preference(ctx context.Context, owner string, def TableDefinition) Preference {
	defaults := DefaultPreference(def)
	if s.prefs == nil || owner == "" {
		return defaults
	}

	p, err := s.prefs.Load(ctx, owner, def.Info.Key)
	if err != nil {
		if !errors.Is(err, ErrPreferenceNotFound) {
			slog.Warn("load preference failed, using defaults",
				"table", def.Info.Key,
				"error", fmt.Errorf("load preference: %w", err),
			)
		}
		return defaults
	}
	return ReconcilePreference(def, p)
}

// ReconcilePreference fits a saved configuration to the current catalog.
// Columns added to the catalog after the save are appended to the order and
// shown when they are part of the default visibility list. Keys the catalog
// dropped are left for the grid to ignore.
func ReconcilePreference(def TableDefinition, p Preference) Preference {
	defaults := DefaultPreference(def)
	if len(p.Order) == 0 {
		p.Order = slices.Clone(p.ActiveKeys)
	}
	known := make(map[string]bool, len(p.Order))
	for _, k := range p.Order {
		known[k] = true
	}
	for _, k := range p.ActiveKeys {
		known[k] = true
	}
	shown := make(map[string]bool, len(defaults.ActiveKeys))
	for _, k := range defaults.ActiveKeys {
		shown[k] = true
	}
	for _, k := range def.Keys() {
		if known[k] {
			continue
		}
		p.Order = append(p.Order, k)
		if shown[k] {
			p.ActiveKeys = append(p.ActiveKeys, k)
		}
	}
	if p.Widths == nil {
		p.Widths = map[string]int{}
	}
	return p
}

func (s *Service) save(ctx context.Context, owner, key string, p Preference) error {
	if s.prefs == nil || owner == "" {
		return nil
	}
	if err := s.saves.Acquire(ctx); err != nil {
		return fmt.Errorf("save preference: %w", err)
	}
	defer s.saves.Release()

	saveCtx, cancel := context.WithTimeout(ctx, SaveTimeout)
	defer cancel()

	if err := s.prefs.Save(saveCtx, owner, key, p); err != nil {
		return fmt.Errorf("save preference: %w", err)
	}
	slog.Debug("column preference saved",
		"table", key,
		"active", len(p.ActiveKeys),
		"widths", len(p.Widths),
	)
	return nil
}

// props builds the host props of def, fetching rows when req asks for them.
func (s *Service) props(ctx context.Context, def TableDefinition, pref Preference, req ViewRequest) (grid.Props, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = s.cfg.PageSize
	}

	props := grid.Props{
		Columns:           BuildColumns(def, s.cells),
		RowKey:            rowKeyFunc(def.Info.RowKey),
		ActiveKeys:        pref.ActiveKeys,
		Order:             pref.Order,
		FixedColumns:      def.Fixed,
		AttributeKeys:     def.AttributeKeys,
		GroupedMode:       req.Grouped,
		GroupTitles:       def.GroupTitles,
		HiddenPanels:      req.HiddenPanels,
		ActionKey:         def.ActionKey,
		EditMode:          req.EditMode,
		SkeletonRows:      s.cfg.SkeletonRows,
		AnimationDuration: s.cfg.AnimationDuration,
		StaggerDelay:      s.cfg.StaggerDelay,
		Pagination:        grid.Pagination{Page: max(req.Page, 1), PageSize: pageSize},
	}

	if !req.WithRows || s.rows == nil {
		return props, nil
	}

	page, err := s.rows.Page(ctx, def.Info.Key, PageRequest{
		Page:         req.Page,
		PageSize:     pageSize,
		Search:       req.Search,
		Fields:       def.Fields(),
		SearchFields: def.SearchFields(),
	})
	if err != nil {
		return props, fmt.Errorf("load rows for %q: %w", def.Info.Key, err)
	}

	props.Rows = page.Rows
	props.IsSuccess = true
	props.Pagination = grid.Pagination{
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}
	return props, nil
}

// checkCommand rejects commands naming columns the table does not define.
func checkCommand(def TableDefinition, cmd ColumnCommand) error {
	var keys []string
	switch cmd.Kind {
	case CommandToggle, CommandResize:
		keys = []string{cmd.Key}
	case CommandReorder:
		keys = []string{cmd.Source}
		if cmd.Target != "" {
			keys = append(keys, cmd.Target)
		}
	case CommandToggleAll, CommandPanel, CommandSearch:
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidCommand, cmd.Kind)
	}
	for _, k := range keys {
		if _, ok := def.Column(k); !ok {
			return fmt.Errorf("%w %q in table %q", ErrUnknownColumn, k, def.Info.Key)
		}
	}
	return nil
}

// applySearch restores the settings panel search of req on host.
func applySearch(host *grid.Host, req ViewRequest) {
	if req.ColumnSearch == "" {
		return
	}
	if g := host.GroupedController(); g != nil {
		group := req.ColumnGroup
		if group == "" {
			group = grid.GeneralGroup
		}
		g.SetSearch(group, req.ColumnSearch)
		return
	}
	if c := host.Controller(); c != nil {
		c.SetSearch(req.ColumnSearch)
	}
}

// panelState returns hidden with group opened (show) or collapsed.
func panelState(hidden []string, group string, show bool) []string {
	out := make([]string, 0, len(hidden)+1)
	for _, id := range hidden {
		if id != group {
			out = append(out, id)
		}
	}
	if !show && group != "" {
		out = append(out, group)
	}
	return out
}

func rowKeyFunc(field string) func(grid.Row) string {
	if field == "" {
		return nil
	}
	return func(row grid.Row) string {
		v, ok := row[field]
		if !ok || v == nil {
			return ""
		}
		return fmt.Sprint(v)
	}
}
