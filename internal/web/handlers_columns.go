package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/hrconsole/internal/core"
	"github.com/JonMunkholm/hrconsole/internal/web/templates"
)

// columnState is one column of a JSON column response.
type columnState struct {
	Key     string `json:"key"`
	Title   string `json:"title"`
	Group   string `json:"group,omitempty"`
	Visible bool   `json:"visible"`
	Fixed   bool   `json:"fixed,omitempty"`
	Width   int    `json:"width,omitempty"`
}

// columnsResponse is the JSON view of an owner's column configuration.
type columnsResponse struct {
	Table      string         `json:"table"`
	ActiveKeys []string       `json:"active_keys"`
	Order      []string       `json:"order"`
	Widths     map[string]int `json:"widths"`
	Columns    []columnState  `json:"columns"`
	UpdatedAt  *time.Time     `json:"updated_at,omitempty"`
}

func newColumnsResponse(def core.TableDefinition, p core.Preference) columnsResponse {
	visible := make(map[string]bool, len(p.ActiveKeys))
	for _, k := range p.ActiveKeys {
		visible[k] = true
	}
	fixed := make(map[string]bool, len(def.Fixed))
	for _, k := range def.Fixed {
		fixed[k] = true
	}

	cols := make([]columnState, 0, len(p.Order))
	for _, k := range p.Order {
		spec, ok := def.Column(k)
		if !ok {
			continue
		}
		width := spec.Width
		if w, ok := p.Widths[k]; ok {
			width = w
		}
		cols = append(cols, columnState{
			Key:     k,
			Title:   spec.Title,
			Group:   spec.Group,
			Visible: visible[k] || fixed[k],
			Fixed:   fixed[k],
			Width:   width,
		})
	}

	resp := columnsResponse{
		Table:      def.Info.Key,
		ActiveKeys: p.ActiveKeys,
		Order:      p.Order,
		Widths:     p.Widths,
		Columns:    cols,
	}
	if !p.UpdatedAt.IsZero() {
		resp.UpdatedAt = &p.UpdatedAt
	}
	return resp
}

// handleGetColumns returns the column configuration the owner sees.
func (s *Server) handleGetColumns(w http.ResponseWriter, r *http.Request) {
	tableKey := chi.URLParam(r, "tableKey")
	def, err := tableDefinition(tableKey)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	pref, err := s.service.Preferences(r.Context(), requestOwner(r), tableKey)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, newColumnsResponse(def, pref))
}

// handleApplyColumns runs one column command. HTMX requests get the updated
// frame; API requests get the new configuration as JSON.
//
// When the command applied but could not be saved, HTMX requests still get
// the updated frame with a notice, since the change is visible until the
// next reload. API requests get the error.
func (s *Server) handleApplyColumns(w http.ResponseWriter, r *http.Request) {
	tableKey := chi.URLParam(r, "tableKey")
	def, err := tableDefinition(tableKey)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	kind, err := core.ParseCommandKind(chi.URLParam(r, "kind"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	view := s.parseViewRequest(r, def)
	view.WithRows = true
	cmd, err := parseCommand(r, kind, view)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	tv, err := s.service.ApplyColumns(r.Context(), requestOwner(r), tableKey, cmd)
	if err != nil && (tv == nil || !isHTMX(r)) {
		s.respondError(w, r, err)
		return
	}

	if isHTMX(r) {
		params := templates.TableParams{Table: tv}
		if err != nil {
			msg := core.MapError(err)
			params.Notice = &msg
			requestLogger(r, tableKey).Warn("column change not saved",
				"kind", kind,
				"error", err,
			)
		}
		templates.TableFrame(params).Render(r.Context(), w)
		return
	}
	writeJSON(w, newColumnsResponse(def, tv.Preference))
}

// handleResetColumns restores the table's default columns for the owner.
func (s *Server) handleResetColumns(w http.ResponseWriter, r *http.Request) {
	tableKey := chi.URLParam(r, "tableKey")
	def, err := tableDefinition(tableKey)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.service.ResetColumns(r.Context(), requestOwner(r), tableKey); err != nil {
		s.respondError(w, r, err)
		return
	}

	if !isHTMX(r) {
		writeJSON(w, newColumnsResponse(def, core.DefaultPreference(def)))
		return
	}

	view := s.parseViewRequest(r, def)
	view.WithRows = true
	view.ColumnSearch, view.ColumnGroup = "", ""
	tv, err := s.service.TableView(r.Context(), requestOwner(r), tableKey, view)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	templates.TableFrame(templates.TableParams{Table: tv}).Render(r.Context(), w)
}
