package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/hrconsole/internal/core"
	"github.com/JonMunkholm/hrconsole/internal/web/templates"
)

// maxCommandBody caps JSON command bodies.
const maxCommandBody = 64 << 10

// parseIntParam parses an integer form or query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.FormValue(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// parseBool accepts the values checkboxes and query strings use.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

// splitList splits a comma-separated parameter, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseViewRequest reads the view state carried by every table request.
// The settings variant falls back to the table's default when the request
// does not name one.
func (s *Server) parseViewRequest(r *http.Request, def core.TableDefinition) core.ViewRequest {
	req := core.ViewRequest{
		EditMode:     parseBool(r.FormValue(templates.ParamEdit)),
		Grouped:      def.Grouped,
		Page:         parseIntParam(r, templates.ParamPage, 1),
		Search:       strings.TrimSpace(r.FormValue(templates.ParamSearch)),
		ColumnSearch: r.FormValue(templates.ParamColSearch),
		ColumnGroup:  r.FormValue(templates.ParamColGroup),
		HiddenPanels: splitList(r.FormValue(templates.ParamHidden)),
	}
	if v := r.FormValue(templates.ParamGrouped); v != "" {
		req.Grouped = parseBool(v)
	}
	if size := parseIntParam(r, templates.ParamPageSize, 0); size > 0 {
		req.PageSize = min(size, s.cfg.Table.MaxPageSize)
	}
	return req
}

// commandPayload is the JSON body of a column command.
type commandPayload struct {
	Group   string  `json:"group"`
	Key     string  `json:"key"`
	Checked *bool   `json:"checked"`
	Search  *string `json:"search"`
	Source  string  `json:"source"`
	Target  string  `json:"target"`
	Width   int     `json:"width"`
}

// parseCommand reads a column command from a JSON body or from form fields.
// Form commands run under the panel search of the view state unless they
// carry their own query.
func parseCommand(r *http.Request, kind core.CommandKind, view core.ViewRequest) (core.ColumnCommand, error) {
	cmd := core.ColumnCommand{Kind: kind, View: view, Search: view.ColumnSearch, Group: view.ColumnGroup}

	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var p commandPayload
		dec := json.NewDecoder(io.LimitReader(r.Body, maxCommandBody))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil && err != io.EOF {
			return cmd, fmt.Errorf("%w: decode body: %v", core.ErrInvalidCommand, err)
		}
		if p.Group != "" {
			cmd.Group = p.Group
		}
		if p.Search != nil {
			cmd.Search = *p.Search
		}
		cmd.Key, cmd.Source, cmd.Target, cmd.Width = p.Key, p.Source, p.Target, p.Width
		cmd.Checked = p.Checked == nil || *p.Checked
		return cmd, validateCommand(cmd)
	}

	if g := r.FormValue("group"); g != "" {
		cmd.Group = g
	}
	if q, ok := formField(r, "query"); ok {
		cmd.Search = q
	}
	cmd.Key = r.FormValue("key")
	cmd.Checked = parseBool(r.FormValue("checked"))
	cmd.Source = r.FormValue("source")
	cmd.Target = r.FormValue("target")
	if w := r.FormValue("width"); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil {
			return cmd, fmt.Errorf("%w: width %q", core.ErrInvalidCommand, w)
		}
		cmd.Width = n
	}
	return cmd, validateCommand(cmd)
}

// formField reports whether name was sent at all, so that an emptied search
// box clears the search.
func formField(r *http.Request, name string) (string, bool) {
	if err := r.ParseForm(); err != nil {
		return "", false
	}
	v, ok := r.Form[name]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

// validateCommand checks the fields each command kind needs.
func validateCommand(cmd core.ColumnCommand) error {
	switch cmd.Kind {
	case core.CommandToggle:
		if cmd.Key == "" {
			return fmt.Errorf("%w: toggle needs a key", core.ErrInvalidCommand)
		}
	case core.CommandResize:
		if cmd.Key == "" || cmd.Width <= 0 {
			return fmt.Errorf("%w: resize needs a key and a positive width", core.ErrInvalidCommand)
		}
	case core.CommandReorder:
		if cmd.Source == "" {
			return fmt.Errorf("%w: reorder needs a source", core.ErrInvalidCommand)
		}
	case core.CommandPanel:
		if cmd.Group == "" {
			return fmt.Errorf("%w: panel needs a group", core.ErrInvalidCommand)
		}
	}
	return nil
}

// navigation builds the sidebar groups from the registry.
func (s *Server) navigation() []templates.TableGroup {
	byGroup := s.service.ListTablesByGroup()
	groups := make([]templates.TableGroup, 0, len(byGroup))
	for _, name := range core.Groups() {
		groups = append(groups, templates.TableGroup{Name: name, Tables: byGroup[name]})
	}
	return groups
}

// tableDefinition resolves the tableKey URL parameter.
func tableDefinition(key string) (core.TableDefinition, error) {
	def, ok := core.Get(key)
	if !ok {
		return core.TableDefinition{}, fmt.Errorf("table %q: %w", key, core.ErrTableNotFound)
	}
	return def, nil
}
