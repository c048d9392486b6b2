package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/hrconsole/internal/core"
	"github.com/JonMunkholm/hrconsole/internal/web/templates"
)

// healthTimeout bounds the backend ping of a health check.
const healthTimeout = 2 * time.Second

// handleDashboard renders the main dashboard page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	templates.Dashboard(s.navigation()).Render(r.Context(), w)
}

// handleTablePage renders a table page. Rows are not fetched here: the page
// shows skeleton rows and loads the ready frame from /rows.
func (s *Server) handleTablePage(w http.ResponseWriter, r *http.Request) {
	s.renderTable(w, r, false)
}

// handleTableRows renders the table with a page of rows. HTMX requests get
// the frame only; direct navigation gets the full page.
func (s *Server) handleTableRows(w http.ResponseWriter, r *http.Request) {
	s.renderTable(w, r, true)
}

func (s *Server) renderTable(w http.ResponseWriter, r *http.Request, withRows bool) {
	tableKey := chi.URLParam(r, "tableKey")
	def, err := tableDefinition(tableKey)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	req := s.parseViewRequest(r, def)
	req.WithRows = withRows
	tv, err := s.service.TableView(r.Context(), requestOwner(r), tableKey, req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	params := templates.TableParams{Table: tv}
	if withRows && isHTMX(r) {
		templates.TableFrame(params).Render(r.Context(), w)
		return
	}
	templates.TablePage(s.navigation(), params).Render(r.Context(), w)
}

// handleTableSettings renders the column settings panel alone.
func (s *Server) handleTableSettings(w http.ResponseWriter, r *http.Request) {
	tableKey := chi.URLParam(r, "tableKey")
	def, err := tableDefinition(tableKey)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	req := s.parseViewRequest(r, def)
	req.EditMode = true
	tv, err := s.service.TableView(r.Context(), requestOwner(r), tableKey, req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	templates.SettingsPanel(tv).Render(r.Context(), w)
}

// handleListTables returns all tables organized by group.
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.ListTablesByGroup())
}

// handleTableDefinition returns the catalog entry of one table.
func (s *Server) handleTableDefinition(w http.ResponseWriter, r *http.Request) {
	def, err := tableDefinition(chi.URLParam(r, "tableKey"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, def)
}

// healthResponse is the body of /healthz.
type healthResponse struct {
	Status   string                 `json:"status"`
	Database string                 `json:"database"`
	Tables   int                    `json:"tables"`
	Saves    core.SaveLimiterStatus `json:"saves"`
}

// handleHealth reports backend reachability and save slot usage. An
// unreachable backend answers 503.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:   "ok",
		Database: "ok",
		Tables:   len(core.All()),
		Saves:    s.service.Saves().Status(),
	}

	if s.backend != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := s.backend.Ping(ctx); err != nil {
			resp.Status = "unavailable"
			resp.Database = core.MapError(err).Code
			requestLogger(r, "").Warn("health check failed", "error", err)
			writeJSONStatus(w, http.StatusServiceUnavailable, resp)
			return
		}
	}
	writeJSON(w, resp)
}
